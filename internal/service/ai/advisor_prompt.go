package ai

import (
	"fmt"
	"strings"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
)

// PromptTemplate defines the structure for advisor prompts.
type PromptTemplate struct {
	SystemPrompt     string
	PersonalityHints []string
	ContextRules     []string
}

// AdvisorPromptManager manages prompt templates for the advisors.
type AdvisorPromptManager struct {
	templates map[string]*PromptTemplate
}

// NewAdvisorPromptManager creates a prompt manager with the built-in
// templates.
func NewAdvisorPromptManager() *AdvisorPromptManager {
	manager := &AdvisorPromptManager{
		templates: make(map[string]*PromptTemplate),
	}
	manager.loadDefaultTemplates()
	return manager
}

// GetPromptTemplate returns the prompt template for a given advisor.
func (pm *AdvisorPromptManager) GetPromptTemplate(advisorID string) (*PromptTemplate, error) {
	template, exists := pm.templates[advisorID]
	if !exists {
		return nil, fmt.Errorf("prompt template not found for advisor: %s", advisorID)
	}
	return template, nil
}

// BuildSystemPrompt creates the system prompt for the advisor, falling back
// to a basic prompt when no template is registered.
func (pm *AdvisorPromptManager) BuildSystemPrompt(adv advisor.Advisor) string {
	template, err := pm.GetPromptTemplate(adv.ID)
	if err != nil {
		return pm.buildBasicSystemPrompt(adv)
	}

	return fmt.Sprintf(`%s

Advisor profile:
- Name: %s
- Role: %s
- Areas of expertise: %s

Guidance:
- %s

Conversation rules:
- %s`,
		template.SystemPrompt,
		adv.Name,
		adv.Title,
		strings.Join(adv.Expertise, ", "),
		strings.Join(template.PersonalityHints, "\n- "),
		strings.Join(template.ContextRules, "\n- "),
	)
}

func (pm *AdvisorPromptManager) buildBasicSystemPrompt(adv advisor.Advisor) string {
	return fmt.Sprintf(`You are %s, %s.

%s

Stay within your advisory domain and answer in clear, plain language.`,
		adv.Name, adv.Title, adv.PromptHint)
}

func (pm *AdvisorPromptManager) loadDefaultTemplates() {
	pm.templates[advisor.Agriculture] = &PromptTemplate{
		SystemPrompt: `You are AgriBot, an agricultural extension advisor for smallholder farmers in Kenya. You give practical, actionable guidance on crops, soils, livestock, pests and diseases, and farm planning.`,
		PersonalityHints: []string{
			"Be warm and encouraging; many users are first-time smallholders",
			"Anchor advice to the local calendar: long rains (March-May) and short rains (October-December)",
			"Prefer low-cost, locally available inputs before commercial products",
			"Quote quantities in units farmers use: acres, 90kg bags, kilograms",
		},
		ContextRules: []string{
			"Ask a clarifying question when the county or crop is unknown and the answer depends on it",
			"Recommend consulting the local agricultural extension officer for farm-specific decisions",
			"Never diagnose plant or animal disease as certain from a description alone; give the likely causes",
		},
	}

	pm.templates[advisor.Legal] = &PromptTemplate{
		SystemPrompt: `You are SheriaBot, a legal information advisor for Kenya. You explain rights, procedures and obligations under Kenyan law in plain language for people without legal training.`,
		PersonalityHints: []string{
			"Be calm, neutral and precise; avoid alarmist language",
			"Cite the governing statute by name when it is well established, such as the Employment Act or the Land Registration Act",
			"Break procedures into numbered steps with the responsible office for each",
		},
		ContextRules: []string{
			"State clearly that responses are general legal information, not legal advice",
			"Recommend consulting a qualified advocate for binding advice or active disputes",
			"Point to free options such as the National Legal Aid Service when cost is a concern",
		},
	}
}
