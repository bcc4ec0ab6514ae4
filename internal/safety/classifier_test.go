package safety

import (
	"strings"
	"testing"

	"github.com/ehiller1/dementia/internal/model"
)

func TestClassifier_Assess_Crisis(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("I want to kill myself")

	if assessment.Tier != model.TierCritical {
		t.Errorf("Expected critical tier, got %s", assessment.Tier)
	}
	if assessment.RiskLevel != model.RiskHigh {
		t.Errorf("Expected high risk, got %s", assessment.RiskLevel)
	}

	found988 := false
	for _, action := range assessment.RecommendedActions {
		if strings.Contains(action, "988") {
			found988 = true
		}
	}
	if !found988 {
		t.Error("Expected 988 hotline in crisis actions")
	}
}

func TestClassifier_Assess_Distress(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("I'm scared, I can't breathe")

	if assessment.Tier != model.TierElevated {
		t.Errorf("Expected elevated tier, got %s", assessment.Tier)
	}
	if assessment.RiskLevel != model.RiskModerate {
		t.Errorf("Expected moderate risk, got %s", assessment.RiskLevel)
	}
	if len(assessment.MatchedKeywords) != 2 {
		t.Errorf("Expected both 'scared' and 'can't breathe' matched, got %v", assessment.MatchedKeywords)
	}
}

func TestClassifier_Assess_Agitation(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("I'm so angry, leave me alone")

	if assessment.Tier != model.TierMonitor {
		t.Errorf("Expected monitor tier, got %s", assessment.Tier)
	}
	if assessment.RiskLevel != model.RiskLowModerate {
		t.Errorf("Expected low-moderate risk, got %s", assessment.RiskLevel)
	}
}

func TestClassifier_Assess_Clear(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("What a nice day")

	if assessment.Tier != model.TierClear {
		t.Errorf("Expected clear tier, got %s", assessment.Tier)
	}
	if assessment.RiskLevel != model.RiskNone {
		t.Errorf("Expected no risk, got %s", assessment.RiskLevel)
	}
	if len(assessment.MatchedKeywords) != 0 {
		t.Errorf("Expected no matched keywords, got %v", assessment.MatchedKeywords)
	}
	if len(assessment.RecommendedActions) != 0 {
		t.Errorf("Expected no actions for clear tier, got %v", assessment.RecommendedActions)
	}
}

func TestClassifier_Assess_CrisisOverridesLowerTiers(t *testing.T) {
	classifier := NewClassifier()

	// Contains agitation ("angry") and crisis ("want to die") keywords
	assessment := classifier.Assess("I'm angry and want to die")

	if assessment.Tier != model.TierCritical {
		t.Errorf("Expected crisis to override agitation, got %s", assessment.Tier)
	}
}

func TestClassifier_Assess_DistressOverridesAgitation(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("Go away, I'm terrified")

	if assessment.Tier != model.TierElevated {
		t.Errorf("Expected distress to override agitation, got %s", assessment.Tier)
	}
}

func TestClassifier_Assess_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier()

	assessment := classifier.Assess("I WANT TO DIE")

	if assessment.Tier != model.TierCritical {
		t.Errorf("Expected case-insensitive crisis match, got %s", assessment.Tier)
	}
}

func TestDetectConfusion(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"There are people in my house", true},
		{"Someone is stealing from me", true},
		{"My mother is waiting for me", true},
		{"I need to go to work now", true},
		{"Where am I?", true},
		{"Who are you?", true},
		{"The garden looks lovely today", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DetectConfusion(tt.message); got != tt.want {
			t.Errorf("DetectConfusion(%q): expected %v, got %v", tt.message, tt.want, got)
		}
	}
}
