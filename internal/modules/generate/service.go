package generate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Andrew-Karvelis/sparkd/internal/ai"
	"github.com/Andrew-Karvelis/sparkd/internal/domain"
	"github.com/Andrew-Karvelis/sparkd/internal/pkg/photo"
)

const (
	canvasSize       = 1024
	maxEncodedSize   = 4 * 1024 * 1024 // upload ceiling of the edit API
	minConfidence    = 70
	defaultMaxThemes = 5
	defaultDelay     = time.Second
)

// FaceValidator answers whether the photo contains one clear face.
type FaceValidator interface {
	AnalyzeFace(ctx context.Context, pngData []byte) (*ai.FaceReport, error)
}

// Editor performs the masked background-replacement edit.
type Editor interface {
	EditImage(ctx context.Context, image, mask []byte, prompt string, n int) ([]ai.EditResult, error)
}

// Segmenter produces a foreground mask when the client did not supply one.
// Optional collaborator; may be nil.
type Segmenter interface {
	SegmentPerson(ctx context.Context, image []byte) ([]byte, error)
}

// ImageStore persists generated output and fetches URL-only results.
type ImageStore interface {
	SaveImage(userID int64, theme string, data []byte) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// CreditLedger is the per-image commit point: SpendOnImage charges one credit
// and records the gallery row in a single transaction.
type CreditLedger interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	SpendOnImage(ctx context.Context, userID int64, theme, url string) (*domain.GalleryImage, error)
}

// FailurePolicy names what happens when a collaborator call itself errors.
// Face validation fails open (the pipeline stays available when the validator
// is down); the edit call fails closed per theme.
type FailurePolicy int

const (
	FailOpen FailurePolicy = iota
	FailClosed
)

type Options struct {
	MaxThemes    int
	MaxFileSize  int64
	RequestDelay time.Duration
	Variations   int
	// FaceValidationPolicy applies to validator transport errors only; a
	// validator that answers "no clear face" always rejects.
	FaceValidationPolicy FailurePolicy
}

type Service struct {
	validator FaceValidator
	editor    Editor
	segmenter Segmenter
	store     ImageStore
	ledger    CreditLedger
	opts      Options
	logf      func(format string, args ...any)
}

func NewService(validator FaceValidator, editor Editor, segmenter Segmenter, store ImageStore, ledger CreditLedger, opts Options) *Service {
	if opts.MaxThemes <= 0 {
		opts.MaxThemes = defaultMaxThemes
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 10 * 1024 * 1024
	}
	if opts.RequestDelay < 0 {
		opts.RequestDelay = defaultDelay
	}
	if opts.Variations <= 0 {
		opts.Variations = 3
	}
	return &Service{
		validator: validator,
		editor:    editor,
		segmenter: segmenter,
		store:     store,
		ledger:    ledger,
		opts:      opts,
		logf:      log.Printf,
	}
}

// themeJob walks one theme through pending → validating → editing →
// succeeded|failed.
type themeJob struct {
	id    string
	theme Theme
	state themeState
	url   string
	err   error
}

func (j *themeJob) fail(err error) {
	j.state = stateFailed
	j.err = err
}

// GenerateBatch runs the whole pipeline for one upload and a list of theme
// ids. Batch preconditions reject before any external call; after that, each
// theme is attempted independently and in order, and one theme's failure
// never aborts the rest.
func (s *Service) GenerateBatch(ctx context.Context, userID int64, fileData []byte, themeIDs []string, maskData []byte) (*BatchResult, error) {
	if err := s.checkPreconditions(ctx, userID, fileData, themeIDs); err != nil {
		return nil, err
	}

	normalized, err := photo.NormalizeSquare(fileData, canvasSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if int64(len(normalized)) > maxEncodedSize {
		return nil, ErrFileTooLarge
	}

	if err := s.validateFace(ctx, normalized); err != nil {
		return nil, err
	}

	mask := s.resolveMask(ctx, normalized, maskData)

	jobs := make([]*themeJob, 0, len(themeIDs))
	for _, id := range themeIDs {
		jobs = append(jobs, &themeJob{id: id, state: statePending})
	}

	for i, job := range jobs {
		s.runTheme(ctx, userID, job, normalized, mask)

		if i < len(jobs)-1 && s.opts.RequestDelay > 0 {
			select {
			case <-ctx.Done():
				for _, rest := range jobs[i+1:] {
					if rest.state == statePending {
						rest.fail(ctx.Err())
					}
				}
			case <-time.After(s.opts.RequestDelay):
			}
		}
	}

	return buildResult(jobs), nil
}

func (s *Service) checkPreconditions(ctx context.Context, userID int64, fileData []byte, themeIDs []string) error {
	if len(fileData) == 0 {
		return ErrNoFile
	}
	if int64(len(fileData)) > s.opts.MaxFileSize {
		return ErrFileTooLarge
	}
	if !photo.SupportedMimeTypes[photo.DetectMimeType(fileData)] {
		return ErrUnsupportedFormat
	}
	if len(themeIDs) == 0 {
		return ErrNoThemes
	}
	if len(themeIDs) > s.opts.MaxThemes {
		return ErrTooManyThemes
	}

	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < int64(len(themeIDs)) {
		return ErrInsufficientCredits
	}
	return nil
}

func (s *Service) validateFace(ctx context.Context, normalized []byte) error {
	if s.validator == nil {
		return nil
	}

	report, err := s.validator.AnalyzeFace(ctx, normalized)
	if err != nil {
		if s.opts.FaceValidationPolicy == FailOpen {
			s.logf("level=warn msg=\"face validation unavailable, proceeding\" err=%v", err)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrFaceValidation, err)
	}

	if report.FaceCount != 1 || !report.HasClearFace || report.Confidence < minConfidence {
		return fmt.Errorf("%w: faces=%d confidence=%d", ErrFaceValidation, report.FaceCount, report.Confidence)
	}
	return nil
}

func (s *Service) resolveMask(ctx context.Context, normalized, maskData []byte) []byte {
	if len(maskData) > 0 {
		prepared, err := photo.PrepareMask(maskData, canvasSize)
		if err != nil {
			s.logf("level=warn msg=\"client mask unusable\" err=%v", err)
		} else {
			return prepared
		}
	}

	if s.segmenter != nil {
		mask, err := s.segmenter.SegmentPerson(ctx, normalized)
		if err != nil {
			s.logf("level=warn msg=\"segmentation failed\" err=%v", err)
			return nil
		}
		return mask
	}
	return nil
}

func (s *Service) runTheme(ctx context.Context, userID int64, job *themeJob, image, mask []byte) {
	job.state = stateValidating

	theme, ok := LookupTheme(job.id)
	if !ok {
		job.fail(fmt.Errorf("%w: %s", ErrUnknownTheme, job.id))
		return
	}
	job.theme = theme

	// Edits without a mask repaint the whole image and lose the subject,
	// so a theme with no mask available fails rather than degrading.
	if len(mask) == 0 {
		job.fail(ErrNoMask)
		return
	}

	job.state = stateEditing

	results, err := s.editor.EditImage(ctx, image, mask, BuildEditPrompt(theme), s.opts.Variations)
	if err != nil {
		job.fail(fmt.Errorf("image edit failed: %w", err))
		return
	}

	data, err := s.pickUsableOutput(ctx, results)
	if err != nil {
		job.fail(err)
		return
	}

	url, err := s.store.SaveImage(userID, job.id, data)
	if err != nil {
		job.fail(fmt.Errorf("failed to store image: %w", err))
		return
	}

	if _, err := s.ledger.SpendOnImage(ctx, userID, job.id, url); err != nil {
		job.fail(fmt.Errorf("failed to commit image: %w", err))
		return
	}

	job.state = stateSucceeded
	job.url = url
}

// pickUsableOutput returns the first variation with embedded data, falling
// back to downloading URL-only results.
func (s *Service) pickUsableOutput(ctx context.Context, results []ai.EditResult) ([]byte, error) {
	for _, r := range results {
		if len(r.Data) > 0 {
			return r.Data, nil
		}
	}
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		data, err := s.store.Download(ctx, r.URL)
		if err != nil {
			s.logf("level=warn msg=\"failed to download edit result\" url=%s err=%v", r.URL, err)
			continue
		}
		return data, nil
	}
	return nil, ErrNoUsableOutput
}

func buildResult(jobs []*themeJob) *BatchResult {
	res := &BatchResult{
		TotalRequested: len(jobs),
		Images:         make([]GeneratedImage, 0, len(jobs)),
		Errors:         make([]ThemeError, 0),
	}

	for _, job := range jobs {
		if job.state == stateSucceeded {
			res.SuccessfulGenerations++
			res.Images = append(res.Images, GeneratedImage{Theme: job.id, ImageURL: job.url, Success: true})
			continue
		}
		res.FailedGenerations++
		msg := "generation failed"
		if job.err != nil {
			msg = job.err.Error()
		}
		res.Errors = append(res.Errors, ThemeError{Theme: job.id, Error: msg})
	}

	res.Success = res.SuccessfulGenerations > 0
	return res
}

// SetLogger overrides the service logger; used by tests.
func (s *Service) SetLogger(logf func(format string, args ...any)) {
	if logf != nil {
		s.logf = logf
	}
}
