//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/curriculum/internal/config"
	"github.com/agenthands/curriculum/internal/driver"
)

func init() {
	_ = godotenv.Load("../../.env")
}

func requireEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if os.Getenv(k) == "" {
			t.Skipf("Skipping integration test: %s not set", k)
		}
	}
}

func testLogger(t *testing.T) zerolog.Logger {
	if os.Getenv("TEST_VERBOSE") != "" {
		return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	}
	return zerolog.Nop()
}

// fixture is a throwaway schema holding a tiny curriculum. Course ids carry
// a random prefix so graph mirrors do not collide with real data.
type fixture struct {
	Schema string
	Prefix string
	DSN    string
}

func (f fixture) ID(n int) string {
	return fmt.Sprintf("%s%03d", f.Prefix, n)
}

var fixtureSQL = []string{
	`CREATE TABLE course (
		id text PRIMARY KEY,
		name text NOT NULL,
		name_vn text,
		description text,
		credit_theory int,
		credit_lab int,
		course_level_id int
	)`,
	`CREATE TABLE program (id int PRIMARY KEY, name text NOT NULL)`,
	`CREATE TABLE course_program (course_id text, program_id int)`,
	`CREATE TABLE course_course_relationship (course_id1 text, course_id2 text, relationship_id int)`,
	`CREATE TABLE prerequisite (course_id text, course_prerequisite_id text, type text)`,
}

// letters maps hex digits onto A-Z so fixture ids still look like course
// codes (four letters, three digits).
func letters(hex string) string {
	var sb strings.Builder
	for _, r := range hex {
		sb.WriteRune('A' + r%26)
	}
	return sb.String()
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	requireEnv(t, "POSTGRES_DSN")
	ctx := context.Background()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	f := fixture{
		Schema: "it_" + suffix,
		Prefix: "T" + letters(suffix[:3]),
	}

	admin, err := driver.NewPostgresDriver(ctx, config.PostgresConfig{DSN: os.Getenv("POSTGRES_DSN")}, driver.PostgresOptions{}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", f.Schema))
		admin.Close()
	})

	_, err = admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", f.Schema))
	require.NoError(t, err)

	u, err := url.Parse(os.Getenv("POSTGRES_DSN"))
	require.NoError(t, err)
	q := u.Query()
	q.Set("search_path", f.Schema+",public")
	u.RawQuery = q.Encode()
	f.DSN = u.String()

	db, err := driver.NewPostgresDriver(ctx, config.PostgresConfig{DSN: f.DSN}, driver.PostgresOptions{}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range fixtureSQL {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	courses := []struct {
		id, name, nameVN, desc string
		theory, lab            int
	}{
		{f.ID(1), "Introduction to Programming", "Nhập môn lập trình", "Variables, control flow and functions in Python.", 3, 1},
		{f.ID(2), "Data Structures", "Cấu trúc dữ liệu", "Lists, stacks, queues, trees and graphs.", 3, 1},
		{f.ID(3), "Database Fundamentals", "Cơ sở dữ liệu", "Relational model, SQL and normalization.", 4, 0},
		{f.ID(4), "Machine Learning", "Học máy", "Supervised learning, regression and neural networks.", 4, 0},
	}
	for _, c := range courses {
		_, err := db.Exec(ctx,
			`INSERT INTO course (id, name, name_vn, description, credit_theory, credit_lab, course_level_id) VALUES ($1, $2, $3, $4, $5, $6, 1)`,
			c.id, c.name, c.nameVN, c.desc, c.theory, c.lab)
		require.NoError(t, err)
	}

	_, err = db.Exec(ctx, `INSERT INTO program (id, name) VALUES (1, 'Computer Science')`)
	require.NoError(t, err)
	for _, c := range courses {
		_, err := db.Exec(ctx, `INSERT INTO course_program (course_id, program_id) VALUES ($1, 1)`, c.id)
		require.NoError(t, err)
	}

	// 002 and 004 need 001; 004 also needs 002. 003 has a self-loop only.
	edges := [][2]string{
		{f.ID(2), f.ID(1)},
		{f.ID(4), f.ID(1)},
		{f.ID(4), f.ID(2)},
		{f.ID(3), f.ID(3)},
	}
	for _, e := range edges {
		_, err := db.Exec(ctx, `INSERT INTO course_course_relationship (course_id1, course_id2, relationship_id) VALUES ($1, $2, 1)`, e[0], e[1])
		require.NoError(t, err)
		_, err = db.Exec(ctx, `INSERT INTO prerequisite (course_id, course_prerequisite_id, type) VALUES ($1, $2, 'required')`, e[0], e[1])
		require.NoError(t, err)
	}

	return f
}
