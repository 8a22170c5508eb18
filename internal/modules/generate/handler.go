package generate

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrew-Karvelis/sparkd/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/generate", h.Generate)
	protected.GET("/themes", h.ListThemes)
}

// Generate accepts a multipart form: "file" (the photo), "themes" (JSON array
// of theme ids) and an optional "mask".
func (h *Handler) Generate(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No photo uploaded")
		return
	}
	fileData, err := readUpload(fileHeader)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_FILE", "Failed to read uploaded photo")
		return
	}

	var themeIDs []string
	if raw := c.PostForm("themes"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &themeIDs); err != nil {
			response.Error(c, http.StatusBadRequest, "BAD_THEMES", "Themes must be a JSON array of theme ids")
			return
		}
	}

	var maskData []byte
	if maskHeader, err := c.FormFile("mask"); err == nil {
		maskData, err = readUpload(maskHeader)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "BAD_MASK", "Failed to read uploaded mask")
			return
		}
	}

	result, err := h.service.GenerateBatch(c.Request.Context(), userID, fileData, themeIDs, maskData)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile),
			errors.Is(err, ErrFileTooLarge),
			errors.Is(err, ErrUnsupportedFormat),
			errors.Is(err, ErrNoThemes),
			errors.Is(err, ErrTooManyThemes),
			errors.Is(err, ErrInsufficientCredits),
			errors.Is(err, ErrFaceValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "GENERATION_FAILED", "Failed to generate images")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListThemes(c *gin.Context) {
	themes := make([]Theme, 0, len(themeCatalog))
	for _, id := range []string{"nature", "sports", "formal", "travel", "casual", "adventure", "creative", "foodie"} {
		if theme, ok := LookupTheme(id); ok {
			themes = append(themes, theme)
		}
	}
	response.Success(c, http.StatusOK, gin.H{"themes": themes})
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
