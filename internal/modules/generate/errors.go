package generate

import "errors"

var (
	ErrNoFile              = errors.New("no photo uploaded")
	ErrFileTooLarge        = errors.New("photo exceeds the size limit")
	ErrUnsupportedFormat   = errors.New("unsupported photo format")
	ErrNoThemes            = errors.New("no themes selected")
	ErrTooManyThemes       = errors.New("too many themes selected")
	ErrUnknownTheme        = errors.New("unknown theme")
	ErrInsufficientCredits = errors.New("insufficient credits for selected themes")
	ErrNoMask              = errors.New("no edit mask available")
	ErrFaceValidation      = errors.New("photo failed face validation")
	ErrNoUsableOutput      = errors.New("no usable output returned")
)
