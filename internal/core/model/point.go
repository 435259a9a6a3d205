package model

import (
	"fmt"

	"github.com/agenthands/curriculum/internal/apperrors"
)

// Payload keys written by the indexer.
const (
	PayloadCourseID      = "course_id"
	PayloadCourseName    = "course_name"
	PayloadNameVN        = "name_vn"
	PayloadDescription   = "description"
	PayloadCreditsTheory = "credits_theory"
	PayloadCreditsLab    = "credits_lab"
	PayloadProgram       = "program"
	PayloadText          = "text"
)

// PointPayload is the fixed schema stored next to every course vector.
// CourseID and CourseName are required; everything else is optional.
type PointPayload struct {
	CourseID      string `json:"course_id"`
	CourseName    string `json:"course_name"`
	NameVN        string `json:"name_vn"`
	Description   string `json:"description"`
	CreditsTheory int    `json:"credits_theory"`
	CreditsLab    int    `json:"credits_lab"`
	Program       string `json:"program"`
	Text          string `json:"text"`
}

// EmbeddingPoint ids are assigned per index build and are not stable
// across rebuilds.
type EmbeddingPoint struct {
	ID      uint64
	Vector  []float32
	Payload PointPayload
}

func (p PointPayload) TotalCredits() int {
	return p.CreditsTheory + p.CreditsLab
}

// Map flattens the payload for stores that keep schemaless documents.
func (p PointPayload) Map() map[string]any {
	return map[string]any{
		PayloadCourseID:      p.CourseID,
		PayloadCourseName:    p.CourseName,
		PayloadNameVN:        p.NameVN,
		PayloadDescription:   p.Description,
		PayloadCreditsTheory: int64(p.CreditsTheory),
		PayloadCreditsLab:    int64(p.CreditsLab),
		PayloadProgram:       p.Program,
		PayloadText:          p.Text,
	}
}

// DecodePayload validates a raw payload returned by a vector store.
func DecodePayload(raw map[string]any) (PointPayload, error) {
	var p PointPayload
	var err error

	if p.CourseID, err = requiredString(raw, PayloadCourseID); err != nil {
		return PointPayload{}, err
	}
	if p.CourseName, err = requiredString(raw, PayloadCourseName); err != nil {
		return PointPayload{}, err
	}

	p.NameVN = optionalString(raw, PayloadNameVN)
	p.Description = optionalString(raw, PayloadDescription)
	p.Program = optionalString(raw, PayloadProgram)
	p.Text = optionalString(raw, PayloadText)
	p.CreditsTheory = optionalInt(raw, PayloadCreditsTheory)
	p.CreditsLab = optionalInt(raw, PayloadCreditsLab)

	return p, nil
}

func requiredString(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: missing %q", apperrors.ErrInvalidPayload, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", apperrors.ErrInvalidPayload, key)
	}
	return s, nil
}

func optionalString(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// optionalInt accepts the numeric shapes produced by JSON (float64) and by
// typed stores (int64).
func optionalInt(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
