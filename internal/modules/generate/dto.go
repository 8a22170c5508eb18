package generate

// GeneratedImage is one successful per-theme result.
type GeneratedImage struct {
	Theme    string `json:"theme"`
	ImageURL string `json:"imageUrl"`
	Success  bool   `json:"success"`
}

// ThemeError is one failed per-theme result.
type ThemeError struct {
	Theme string `json:"theme"`
	Error string `json:"error"`
}

// BatchResult summarises a whole generation batch. Images and Errors together
// cover every requested theme, in request order.
type BatchResult struct {
	Success               bool             `json:"success"`
	TotalRequested        int              `json:"totalRequested"`
	SuccessfulGenerations int              `json:"successfulGenerations"`
	FailedGenerations     int              `json:"failedGenerations"`
	Images                []GeneratedImage `json:"images"`
	Errors                []ThemeError     `json:"errors"`
}
