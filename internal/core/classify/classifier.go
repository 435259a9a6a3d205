package classify

import (
	"strings"

	"github.com/agenthands/curriculum/internal/core/model"
)

var prerequisitePhrases = []string{
	"prerequisite",
	"prereq",
	"what do i need before",
	"what should i take before",
	"what is required for",
	"requirements for",
}

var dependentPhrases = []string{
	"which courses require",
	"which course require",
	"what courses require",
	"what require",
	"courses that need",
	"courses that require",
}

// Classify assigns exactly one intent to query. Rules are checked in order
// and the first match wins.
func Classify(query string) model.Classification {
	q := strings.ToLower(query)

	if containsAny(q, prerequisitePhrases) {
		return model.Prerequisite
	}
	if containsAny(q, dependentPhrases) {
		return model.Dependent
	}

	// "require ... for X" asks what X needs; "require X" asks what needs X.
	if i := strings.Index(q, "require"); i >= 0 {
		if j := strings.Index(q, "for"); j >= 0 && i < j {
			return model.Prerequisite
		}
		return model.Dependent
	}

	return model.Semantic
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
