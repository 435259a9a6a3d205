// Package assemble renders retrieval results as bounded plain text, either as
// generator context or as a finished answer for the relational paths.
package assemble

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/agenthands/curriculum/internal/core/model"
)

const (
	Ellipsis = "..."

	NoResults      = "No relevant courses found"
	CourseNotFound = "Course not found. Please check the course ID or name."
)

// Truncate returns s cut to at most budget runes after NFC normalization,
// with Ellipsis appended only when something was cut.
func Truncate(s string, budget int) string {
	out, cut := Clip(strings.TrimSpace(s), budget)
	if !cut {
		return out
	}
	return strings.TrimRightFunc(out, isSpace) + Ellipsis
}

// Clip returns the NFC form of s limited to n runes and whether anything was
// removed. n < 1 means no limit.
func Clip(s string, n int) (string, bool) {
	s = norm.NFC.String(s)
	if n < 1 || utf8.RuneCountInString(s) <= n {
		return s, false
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Context renders results in input order as a numbered list. Empty input
// yields an explicit message rather than an empty string.
func Context(results []model.RetrievalResult, budget int) string {
	if len(results) == 0 {
		return NoResults + " in the curriculum."
	}

	var sb strings.Builder
	sb.WriteString("Relevant courses:\n\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, r.CourseID, r.Name)
		if r.NameVN != "" {
			fmt.Fprintf(&sb, "   Vietnamese: %s\n", r.NameVN)
		}
		fmt.Fprintf(&sb, "   Credits: %d\n", r.Credits())
		if r.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", Truncate(r.Description, budget))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Prerequisites is the final answer for a prerequisite lookup.
func Prerequisites(course model.Course, prereqs []model.RetrievalResult, budget int) string {
	if len(prereqs) == 0 {
		return fmt.Sprintf("%s (%s) has NO prerequisites.\nThis course can be taken without prior coursework.",
			course.ID, course.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Prerequisites for %s (%s):\n\n", course.ID, course.Name)
	for i, p := range prereqs {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, p.CourseID, p.Name)
		if p.NameVN != "" {
			fmt.Fprintf(&sb, "   Vietnamese: %s\n", p.NameVN)
		}
		if p.CreditLab > 0 {
			fmt.Fprintf(&sb, "   Credits: %d (%d theory + %d lab)\n", p.Credits(), p.CreditTheory, p.CreditLab)
		} else {
			fmt.Fprintf(&sb, "   Credits: %d\n", p.Credits())
		}
		if p.Description != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", Truncate(p.Description, budget))
		}
		if p.LevelID != "" {
			fmt.Fprintf(&sb, "   Level: %s\n", p.LevelID)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Dependents is the final answer for a "what requires X" lookup.
func Dependents(course model.Course, deps []model.RetrievalResult, budget int) string {
	if len(deps) == 0 {
		return fmt.Sprintf("No courses require %s (%s) as prerequisite.\n"+
			"This course is not a prerequisite for any other courses in the current curriculum.",
			course.ID, course.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Courses that require %s (%s) as prerequisite:\n\n", course.ID, course.Name)
	fmt.Fprintf(&sb, "Total: %d courses\n\n", len(deps))
	for i, d := range deps {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, d.CourseID, d.Name)
		if d.NameVN != "" {
			fmt.Fprintf(&sb, "   Vietnamese: %s\n", d.NameVN)
		}
		fmt.Fprintf(&sb, "   Credits: %d\n", d.Credits())
		if d.Description != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", Truncate(d.Description, budget))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// UserPrompt wraps assembled context and the original question for the
// generator.
func UserPrompt(context, query string) string {
	return fmt.Sprintf("Curriculum Information:\n%s\n\nQuestion: %s\n\nProvide a clear, concise answer:", context, query)
}
