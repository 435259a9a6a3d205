package model

import "strings"

// RetrievalResult is the shape both retrieval paths produce. Within one
// result set CourseID values are unique.
type RetrievalResult struct {
	CourseID     string   `json:"course_id"`
	Name         string   `json:"name"`
	NameVN       string   `json:"name_vn,omitempty"`
	Description  string   `json:"description,omitempty"`
	CreditTheory int      `json:"credit_theory"`
	CreditLab    int      `json:"credit_lab"`
	LevelID      string   `json:"level_id,omitempty"`
	Score        *float32 `json:"score,omitempty"`
}

func (r RetrievalResult) Credits() int {
	return r.CreditTheory + r.CreditLab
}

func (r RetrievalResult) Key() string {
	return r.CourseID
}

// FromCourse converts a relational row. Relational results carry no score.
func FromCourse(c Course) RetrievalResult {
	return RetrievalResult{
		CourseID:     c.ID,
		Name:         c.Name,
		NameVN:       c.NameVN,
		Description:  c.Description,
		CreditTheory: c.CreditTheory,
		CreditLab:    c.CreditLab,
		LevelID:      c.LevelID,
	}
}

// FromPayload converts a decoded vector hit.
func FromPayload(p PointPayload, score float32) RetrievalResult {
	s := score
	return RetrievalResult{
		CourseID:     p.CourseID,
		Name:         p.CourseName,
		NameVN:       p.NameVN,
		Description:  p.Description,
		CreditTheory: p.CreditsTheory,
		CreditLab:    p.CreditsLab,
		Score:        &s,
	}
}

// Classification is the intent assigned to a query.
type Classification int

const (
	Semantic Classification = iota
	Prerequisite
	Dependent
)

func (c Classification) String() string {
	switch c {
	case Prerequisite:
		return "prerequisite"
	case Dependent:
		return "dependent"
	default:
		return "semantic"
	}
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseClassification is the inverse of String; unknown values are Semantic.
func ParseClassification(s string) Classification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prerequisite":
		return Prerequisite
	case "dependent":
		return Dependent
	default:
		return Semantic
	}
}
