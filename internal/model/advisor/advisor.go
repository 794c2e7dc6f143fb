package advisor

// Advisor captures one assistant specialization exposed to the frontend.
// The set is closed: sessions for one advisor are never visible to another.
type Advisor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Greeting   string   `json:"greeting"`
	Apology    string   `json:"apology"`
	PromptHint string   `json:"promptHint"`
	Expertise  []string `json:"expertise,omitempty"`
}

// Advisor identifiers for the two supported specializations.
const (
	Agriculture = "agriculture"
	Legal       = "legal"
)

// Seed provides the advisors required by the product.
func Seed() []Advisor {
	return []Advisor{
		{
			ID:         Agriculture,
			Name:       "AgriBot",
			Title:      "Agriculture Advisor",
			Greeting:   "Habari! I'm AgriBot, your agriculture advisor. Ask me about crops, soil, livestock, pests, or planting seasons.",
			Apology:    "Sorry, I couldn't reach the agriculture advisory service right now. Please try your question again in a moment.",
			PromptHint: "Give practical, season-aware farming advice grounded in East African smallholder conditions.",
			Expertise:  []string{"crop planning", "soil health", "livestock care", "pest control", "market timing"},
		},
		{
			ID:         Legal,
			Name:       "SheriaBot",
			Title:      "Legal Advisor",
			Greeting:   "Hello! I'm SheriaBot, your legal advisor. Ask me about land, contracts, employment, family law, or your rights.",
			Apology:    "Sorry, I couldn't reach the legal advisory service right now. Please try your question again in a moment.",
			PromptHint: "Explain Kenyan law in plain language and always recommend consulting a qualified advocate for binding advice.",
			Expertise:  []string{"land and property", "contracts", "employment law", "family law", "succession"},
		},
	}
}
