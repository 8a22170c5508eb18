package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Andrew-Karvelis/sparkd/internal/middleware"
	"github.com/Andrew-Karvelis/sparkd/internal/pkg/response"
	"github.com/Andrew-Karvelis/sparkd/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service       *Service
	galleryReader GalleryReader
	sessionTTL    time.Duration
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service, galleryReader GalleryReader, sessionTTL time.Duration) *Handler {
	return &Handler{
		service:       service,
		galleryReader: galleryReader,
		sessionTTL:    sessionTTL,
	}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/user", h.GetUser)
	protected.GET("/profile", h.GetProfile)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fieldErrors := validator.Validate(&req); fieldErrors != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration fields", fieldErrors)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusCreated, gin.H{
		"user": gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"credits": user.Credits,
		},
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"credits": user.Credits,
		},
		"token": token,
	})
}

// GetUser returns the lightweight header payload: name and live credit balance.
func (h *Handler) GetUser(c *gin.Context) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	userID := userIDAny.(int64)

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"name":    user.Name,
		"credits": user.Credits,
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	userID := userIDAny.(int64)

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	profile := ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Credits:   user.Credits,
		CreatedAt: user.CreatedAt.Format("2006-01-02"),
		Gallery:   []GalleryItem{},
	}

	if h.galleryReader != nil {
		images, err := h.galleryReader.ListByUserID(c.Request.Context(), userID)
		if err == nil {
			for _, img := range images {
				profile.Gallery = append(profile.Gallery, GalleryItem{
					ID:        img.ID,
					Theme:     img.Theme,
					URL:       img.URL,
					CreatedAt: img.CreatedAt.Format(time.RFC3339),
				})
			}
		}
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": profile,
	})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.sessionTTL / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
}
