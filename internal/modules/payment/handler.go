package payment

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Andrew-Karvelis/sparkd/internal/pkg/response"
)

const maxWebhookBody = 1 << 20 // Stripe payloads are small; cap reads anyway

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/payment/checkout", h.CreateCheckout)
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/payment/webhook", h.Webhook)
}

func (h *Handler) CreateCheckout(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.CreateCheckout(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidSelection) {
			response.Error(c, http.StatusBadRequest, "INVALID_SELECTION", "Invalid plan or credits selection")
			return
		}
		h.loggerf("level=error msg=checkout failed user_id=%d err=%v", userID, err)
		response.Error(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Failed to create checkout session")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Webhook needs the raw body for signature verification, so it never binds.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if err := h.service.HandleWebhook(c.Request.Context(), payload, sigHeader); err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		h.loggerf("level=error msg=webhook handling failed err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook failed"})
		return
	}

	c.JSON(http.StatusOK, WebhookAck{Received: true})
}
