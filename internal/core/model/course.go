package model

// Course is a row of the course table joined with its optional program.
type Course struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NameVN       string `json:"name_vn,omitempty"`
	Description  string `json:"description,omitempty"`
	CreditTheory int    `json:"credit_theory"`
	CreditLab    int    `json:"credit_lab"`
	ProgramName  string `json:"program_name,omitempty"`
	LevelID      string `json:"course_level_id,omitempty"`
}

// TotalCredits is always derived, never stored.
func (c Course) TotalCredits() int {
	return c.CreditTheory + c.CreditLab
}

// PrerequisiteEdge points from CourseID to a course it depends on.
type PrerequisiteEdge struct {
	CourseID       string `json:"course_id"`
	PrerequisiteID string `json:"prerequisite_id"`
	Type           string `json:"type,omitempty"`
}

// IsSelfLoop reports an edge from a course to itself. The store does not
// prevent these; readers skip them.
func (e PrerequisiteEdge) IsSelfLoop() bool {
	return e.CourseID == e.PrerequisiteID
}

func (c Course) Key() string {
	return c.ID
}
