package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

const faceAnalysisPrompt = `Analyze this image for face detection and photo quality for a profile photo. Please provide:

1. How many faces are visible in the image?
2. Is there exactly one clear, well-lit face?
3. Are there any quality issues (blurry, too dark, face too small, etc.)?
4. Any suggestions for improvement?

Respond in this exact JSON format:
{
  "faceCount": number,
  "hasClearFace": boolean,
  "confidence": number (0-100),
  "issues": ["list of issues"],
  "suggestions": ["list of suggestions"]
}`

// FaceReport is the parsed outcome of a vision face analysis.
type FaceReport struct {
	FaceCount    int      `json:"faceCount"`
	HasClearFace bool     `json:"hasClearFace"`
	Confidence   int      `json:"confidence"`
	Issues       []string `json:"issues"`
	Suggestions  []string `json:"suggestions"`
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseFaceReport extracts the JSON block from the model's reply. Vision
// models wrap JSON in prose often enough that a plain Unmarshal of the whole
// message is not reliable; when no JSON is found at all we fall back to a
// low-confidence keyword reading of the text.
func parseFaceReport(content string) *FaceReport {
	if match := jsonBlockRe.FindString(content); match != "" {
		var report FaceReport
		if err := json.Unmarshal([]byte(match), &report); err == nil {
			return &report
		}
	}

	lower := strings.ToLower(content)
	hasFace := strings.Contains(lower, "face") && !strings.Contains(lower, "no face")
	multiple := strings.Contains(lower, "multiple") || strings.Contains(lower, "several")

	report := &FaceReport{
		HasClearFace: hasFace && !multiple,
		Confidence:   50,
	}
	switch {
	case multiple:
		report.FaceCount = 2
	case hasFace:
		report.FaceCount = 1
	default:
		report.Issues = []string{"Could not clearly detect a face in the image"}
	}
	return report
}
