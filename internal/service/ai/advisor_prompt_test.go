package ai

import (
	"strings"
	"testing"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
)

func TestBuildSystemPromptUsesTemplate(t *testing.T) {
	pm := NewAdvisorPromptManager()

	for _, adv := range advisor.Seed() {
		prompt := pm.BuildSystemPrompt(adv)
		if !strings.Contains(prompt, adv.Name) {
			t.Fatalf("prompt for %s should mention the advisor name", adv.ID)
		}
		if !strings.Contains(prompt, "Conversation rules:") {
			t.Fatalf("prompt for %s should include conversation rules", adv.ID)
		}
	}
}

func TestBuildSystemPromptFallback(t *testing.T) {
	pm := NewAdvisorPromptManager()
	unknown := advisor.Advisor{
		ID:         "fisheries",
		Name:       "SamakiBot",
		Title:      "Fisheries Advisor",
		PromptHint: "Advise on pond management.",
	}

	prompt := pm.BuildSystemPrompt(unknown)
	if !strings.Contains(prompt, "SamakiBot") {
		t.Fatalf("fallback prompt should mention the advisor name: %s", prompt)
	}
	if !strings.Contains(prompt, "Advise on pond management.") {
		t.Fatalf("fallback prompt should include the hint: %s", prompt)
	}
}

func TestGetPromptTemplateUnknown(t *testing.T) {
	pm := NewAdvisorPromptManager()
	if _, err := pm.GetPromptTemplate("missing"); err == nil {
		t.Fatal("expected error for unknown advisor")
	}
}
