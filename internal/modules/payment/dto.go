package payment

type CheckoutRequest struct {
	Type string `json:"type" binding:"required,oneof=subscription credits"`
	ID   string `json:"id" binding:"required"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}
