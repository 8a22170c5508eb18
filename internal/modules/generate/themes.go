package generate

import "fmt"

// Theme describes one selectable background scene.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"-"`
}

// identityDirective locks the subject's likeness. It precedes every theme
// scene prompt so the edit only ever changes the background and outfit.
const identityDirective = `Create a hyper-realistic photo of this exact person for social media.
IMPORTANT: The person's face, body, and identity are locked and may NOT change under any circumstances. Clothing is the ONLY element that may be altered, and only as described.

Guidelines:
- Exact likeness only: replicate the person's face structure, proportions, eye shape, nose, mouth, jawline, ears, and all defining features
- Do not change hairstyle, hair length, hairline, facial hair, or skin tone
- Do not alter body type, height, posture, or proportions
- Do not change age, weight, or any unique characteristics (scars, freckles, birthmarks)
- Do not stylize, beautify, or exaggerate features in any way
- No alternate interpretations - likeness must match reference with absolute precision

Style & Format:
- Hyper-realistic, ultra-detailed photography
- Wide-angle shot with natural depth, scale, and authentic textures
- Lighting must be natural, shadows realistic, background indistinguishable from a real photograph
- Image must NOT contain signs of CGI, painting, smooth gradients, or surreal artifacts

Positioning:
- Subject slightly farther from camera (mid-shot to full-body)
- Looking slightly away, candid but face remains unobstructed and fully visible
- No props or objects blocking the face

Outfit:
- Only replace clothing with attire appropriate for the selected setting
- Clothing change must look natural, realistic, and integrated, as if photographed in that outfit
- No stylization or beautification - hyper-realistic photo only`

var themeCatalog = map[string]Theme{
	"nature": {
		ID:          "nature",
		Name:        "Nature & Outdoors",
		Description: "Scenic outdoor settings with natural beauty",
		Prompt:      "in a stunning natural outdoor setting - hiking on a scenic mountain trail with beautiful vista, standing by a pristine lake at golden hour, or walking through a lush forest. Natural sunlight, breathtaking landscape background, adventure-ready but stylish outfit.",
	},
	"sports": {
		ID:          "sports",
		Name:        "Sports & Fitness",
		Description: "Athletic and fitness-focused environments",
		Prompt:      "in an active, athletic environment - at a modern fitness gym, on a tennis court, jogging through a park, or at a sports facility. Wearing appropriate athletic wear, showing fitness and energy, dynamic but approachable pose.",
	},
	"formal": {
		ID:          "formal",
		Name:        "Professional & Elegant",
		Description: "Sophisticated business and formal settings",
		Prompt:      "in an elegant, sophisticated setting - at an upscale restaurant, business district, art gallery, or formal event venue. Wearing sharp, well-fitted formal attire, confident posture, refined atmosphere with warm lighting.",
	},
	"travel": {
		ID:          "travel",
		Name:        "Travel & Adventure",
		Description: "Exciting destinations and travel experiences",
		Prompt:      "at an iconic travel destination - in front of famous landmarks, exploring a vibrant city street, at a beautiful beach resort, or discovering cultural sites. Stylish travel outfit, sense of adventure and worldliness.",
	},
	"casual": {
		ID:          "casual",
		Name:        "Casual & Relaxed",
		Description: "Comfortable everyday social settings",
		Prompt:      "in a relaxed, trendy everyday setting - at a cozy coffee shop, urban park, bookstore, or modern casual dining spot. Comfortable but stylish casual wear, approachable and friendly demeanor, warm inviting atmosphere.",
	},
	"adventure": {
		ID:          "adventure",
		Name:        "Adventure Sports",
		Description: "Thrilling outdoor activities and extreme sports",
		Prompt:      "engaged in exciting outdoor activities - rock climbing with safety gear, surfing at a beautiful beach, skiing on mountain slopes, or exploring scenic hiking trails. Action-oriented but safe, showing adventurous spirit and confidence.",
	},
	"creative": {
		ID:          "creative",
		Name:        "Creative & Artistic",
		Description: "Artistic environments and creative spaces",
		Prompt:      "in an artistic, creative environment - at an art studio, music venue, creative workspace, or cultural event. Expressing creativity and passion, inspiring and cultured atmosphere.",
	},
	"foodie": {
		ID:          "foodie",
		Name:        "Food & Dining",
		Description: "Culinary experiences and food culture",
		Prompt:      "at a trendy restaurant, food market, cooking class, or wine tasting event. Enjoying culinary experiences, sophisticated taste, warm social setting with great food and ambiance.",
	},
}

// LookupTheme returns the theme for id, or false when the id is unknown.
func LookupTheme(id string) (Theme, bool) {
	theme, ok := themeCatalog[id]
	return theme, ok
}

// BuildEditPrompt combines the identity directive with the theme scene.
func BuildEditPrompt(theme Theme) string {
	return fmt.Sprintf("%s\n\nPlace the person %s", identityDirective, theme.Prompt)
}
