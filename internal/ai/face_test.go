package ai

import "testing"

func TestParseFaceReportJSON(t *testing.T) {
	content := `Here is my analysis:
{
  "faceCount": 1,
  "hasClearFace": true,
  "confidence": 92,
  "issues": [],
  "suggestions": ["use warmer lighting"]
}
Hope this helps.`

	report := parseFaceReport(content)
	if report.FaceCount != 1 || !report.HasClearFace {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Confidence != 92 {
		t.Fatalf("expected confidence 92, got %d", report.Confidence)
	}
}

func TestParseFaceReportFallbackSingleFace(t *testing.T) {
	report := parseFaceReport("The image shows a clear face of one person outdoors.")
	if !report.HasClearFace || report.FaceCount != 1 {
		t.Fatalf("expected single-face fallback, got %+v", report)
	}
	if report.Confidence != 50 {
		t.Fatalf("fallback confidence should be 50, got %d", report.Confidence)
	}
}

func TestParseFaceReportFallbackMultipleFaces(t *testing.T) {
	report := parseFaceReport("There are multiple faces visible in this photo.")
	if report.HasClearFace {
		t.Fatal("multiple faces must not count as a clear single face")
	}
	if report.FaceCount != 2 {
		t.Fatalf("expected face count 2, got %d", report.FaceCount)
	}
}

func TestParseFaceReportFallbackNoFace(t *testing.T) {
	report := parseFaceReport("This is a landscape, no face present.")
	if report.HasClearFace || report.FaceCount != 0 {
		t.Fatalf("expected no-face report, got %+v", report)
	}
	if len(report.Issues) == 0 {
		t.Fatal("expected an issue explaining the missing face")
	}
}

func TestParseFaceReportMalformedJSONFallsBack(t *testing.T) {
	report := parseFaceReport(`{"faceCount": oops} but there is a face here`)
	if !report.HasClearFace {
		t.Fatalf("expected text fallback to detect the face, got %+v", report)
	}
}
