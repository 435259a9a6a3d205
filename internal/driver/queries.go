package driver

// Course graph: (:Course)-[:REQUIRES {type}]->(:Course) mirrors the
// prerequisite edge table, (:Course)-[:IN_PROGRAM]->(:Program) mirrors
// course_program.
const (
	courseReturn = `
		RETURN DISTINCT c.id AS id, c.name AS name, c.name_vn AS name_vn,
			c.description AS description, c.credit_theory AS credit_theory,
			c.credit_lab AS credit_lab, c.course_level_id AS course_level_id
		ORDER BY id
	`

	FindCoursesQuery = `
		MATCH (c:Course)
		WHERE c.name CONTAINS $identifier
			OR c.name_vn CONTAINS $identifier
			OR c.id CONTAINS $identifier
		WITH c ORDER BY c.id LIMIT $limit` + courseReturn

	GetPrerequisitesQuery = `
		MATCH (:Course {id: $course_id})-[:REQUIRES]->(c:Course)
		WHERE c.id <> $course_id` + courseReturn

	GetDependentsQuery = `
		MATCH (c:Course)-[:REQUIRES]->(:Course {id: $course_id})
		WHERE c.id <> $course_id` + courseReturn

	GetAllCoursesQuery = `
		MATCH (c:Course)
		OPTIONAL MATCH (c)-[:IN_PROGRAM]->(p:Program)
		RETURN c.id AS id, c.name AS name, c.name_vn AS name_vn,
			c.description AS description, c.credit_theory AS credit_theory,
			c.credit_lab AS credit_lab, c.course_level_id AS course_level_id,
			p.name AS program_name
		ORDER BY id, program_name
	`

	SaveCourseQuery = `
		MERGE (c:Course {id: $id})
		SET c.name = $name,
			c.name_vn = $name_vn,
			c.description = $description,
			c.credit_theory = $credit_theory,
			c.credit_lab = $credit_lab,
			c.course_level_id = $course_level_id
		WITH c
		FOREACH (x IN CASE WHEN $program_name = "" THEN [] ELSE [1] END |
			MERGE (p:Program {name: $program_name})
			MERGE (c)-[:IN_PROGRAM]->(p))
		RETURN c.id AS id
	`

	SaveRequiresEdgeQuery = `
		MATCH (c:Course {id: $course_id})
		MATCH (p:Course {id: $prerequisite_id})
		MERGE (c)-[r:REQUIRES]->(p)
		SET r.type = $type
		RETURN c.id AS id
	`

	PingQuery = `RETURN 1 AS ok`
)
