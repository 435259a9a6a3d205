package driver

// Every course read selects the same columns in this order.
const courseColumns = `
	c.id,
	c.name,
	COALESCE(c.name_vn, ''),
	COALESCE(c.description, ''),
	COALESCE(c.credit_theory, 0),
	COALESCE(c.credit_lab, 0),
	COALESCE(c.course_level_id::text, '')`

// FindCoursesSQL matches a case-sensitive substring. strpos keeps % and _ in
// the identifier literal.
const FindCoursesSQL = `
	SELECT` + courseColumns + `
	FROM course c
	WHERE strpos(c.name, $1) > 0
		OR strpos(COALESCE(c.name_vn, ''), $1) > 0
		OR strpos(c.id, $1) > 0
	ORDER BY c.id
	LIMIT $2`

const AllCoursesSQL = `
	SELECT` + courseColumns + `,
	COALESCE(p.name, '')
	FROM course c
	LEFT JOIN course_program cp ON c.id = cp.course_id
	LEFT JOIN program p ON cp.program_id = p.id
	ORDER BY c.id, p.name`

// EdgeQueries holds the one-hop reads for a single edge table.
type EdgeQueries struct {
	Prerequisites string
	Dependents    string
	AllEdges      string
}

var EdgeTables = map[string]EdgeQueries{
	// course_id1 has prerequisite course_id2.
	"course_course_relationship": {
		Prerequisites: `
			SELECT DISTINCT` + courseColumns + `
			FROM course_course_relationship ccr
			JOIN course c ON ccr.course_id2 = c.id
			WHERE ccr.course_id1 = $1 AND ccr.course_id2 <> ccr.course_id1
			ORDER BY c.id`,
		Dependents: `
			SELECT DISTINCT` + courseColumns + `
			FROM course_course_relationship ccr
			JOIN course c ON ccr.course_id1 = c.id
			WHERE ccr.course_id2 = $1 AND ccr.course_id2 <> ccr.course_id1
			ORDER BY c.id`,
		AllEdges: `
			SELECT course_id1, course_id2, COALESCE(relationship_id::text, '')
			FROM course_course_relationship
			ORDER BY course_id1, course_id2`,
	},
	"prerequisite": {
		Prerequisites: `
			SELECT DISTINCT` + courseColumns + `
			FROM prerequisite pr
			JOIN course c ON pr.course_prerequisite_id = c.id
			WHERE pr.course_id = $1 AND pr.course_prerequisite_id <> pr.course_id
			ORDER BY c.id`,
		Dependents: `
			SELECT DISTINCT` + courseColumns + `
			FROM prerequisite pr
			JOIN course c ON pr.course_id = c.id
			WHERE pr.course_prerequisite_id = $1 AND pr.course_prerequisite_id <> pr.course_id
			ORDER BY c.id`,
		AllEdges: `
			SELECT course_id, course_prerequisite_id, COALESCE(type::text, '')
			FROM prerequisite
			ORDER BY course_id, course_prerequisite_id`,
	},
}
