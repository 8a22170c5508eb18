package gallery

import (
	"errors"
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
	galleryGroup := protected.Group("/gallery")
	{
		galleryGroup.GET("", h.List)
		galleryGroup.POST("", h.Add)
		galleryGroup.DELETE("/:id", h.Delete)
	}
}

type addRequest struct {
	URL   string `json:"url" binding:"required"`
	Theme string `json:"theme"`
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	images, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GALLERY_FAILED", "Failed to list gallery")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"images": images})
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	img, err := h.service.Add(c.Request.Context(), userID, req.URL, req.Theme)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GALLERY_FAILED", "Failed to save image")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"image": img})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	imageID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), userID, imageID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "IMAGE_NOT_FOUND", "Gallery image not found")
		case errors.Is(err, ErrNotOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not own this image")
		default:
			response.Error(c, http.StatusInternalServerError, "GALLERY_FAILED", "Failed to delete image")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": imageID})
}
