package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyaagrawal02/clivra/internal/store"
)

type cli struct {
	t    *testing.T
	db   string
	now  string
	user string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLIVRA_USER", "")
	t.Setenv("CLIVRA_DB", "")
	return &cli{t: t, db: filepath.Join(t.TempDir(), "clivra.db"), now: "2025-03-10T08:00:00Z", user: "default"}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--db", c.db, "--now", c.now, "--user", c.user))
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "clivra %v", args)
	return out
}

func TestStudyFlow(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("subject", "add", "Math", "--strength", "weak"), `Added subject "Math" (weak)`)
	assert.Contains(t, c.mustRun("topic", "add", "Math", "Algebra", "--hours", "2", "--confidence", "2"), `Added topic "Algebra" to Math`)
	assert.Contains(t, c.mustRun("profile", "set", "--daily", "120", "--exam", "2025-04-09"), "120 min")

	assert.Contains(t, c.mustRun("plan"), "Algebra")

	out := c.mustRun("study", "Algebra", "--minutes", "60", "--confidence", "3")
	assert.Contains(t, out, `Logged 60 minutes on "Algebra"`)
	assert.Contains(t, out, "Next review: Tue, 11 Mar 2025")

	assert.Contains(t, c.mustRun("revise", "Algebra", "--confidence", "4"), "confidence 3 -> 4 (revision #1)")
	assert.Contains(t, c.mustRun("history", "Algebra"), "confidence 3 -> 4")

	assert.Contains(t, c.mustRun("today"), "Algebra")
	assert.Contains(t, c.mustRun("readiness"), "Exam readiness")
	assert.Contains(t, c.mustRun("recover", "--missed", "120", "--days", "10"), "Recovery plan")
	assert.Contains(t, c.mustRun("subject", "list"), "Math")
}

func TestTodayMatchesStudyInLocalZone(t *testing.T) {
	c := newCLI(t)
	c.now = "2025-03-10T22:00:00-05:00"

	c.mustRun("subject", "add", "Math")
	c.mustRun("topic", "add", "Math", "Algebra")
	c.mustRun("plan")
	c.mustRun("study", "Algebra", "--minutes", "60")

	assert.Contains(t, c.mustRun("today"), "1 of 1 sessions done")
}

func TestStudyOtherUsersTopic(t *testing.T) {
	c := newCLI(t)
	c.user = "alice"
	c.mustRun("subject", "add", "Math")
	c.mustRun("topic", "add", "Math", "Algebra")

	st, err := store.Open(context.Background(), c.db, nil)
	require.NoError(t, err)
	topic, err := st.Topics().FindByName(context.Background(), "alice", "Algebra")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	c.user = "bob"
	_, err = c.run("study", topic.ID, "--minutes", "30", "--confidence", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = c.run("history", topic.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	st, err = store.Open(context.Background(), c.db, nil)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Topics().Get(context.Background(), "alice", topic.ID)
	require.NoError(t, err)
	assert.Equal(t, topic.ConfidenceLevel, got.ConfidenceLevel)
	assert.Zero(t, got.CompletedHours)
}

func TestStudyUnknownTopic(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("study", "Nowhere", "--minutes", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `topic "Nowhere"`)
}

func TestImportCommand(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "syllabus.yaml")
	writeFile(t, path, `
subjects:
  - name: Physics
    strength: weak
    topics:
      - name: Kinematics
      - name: Optics
`)
	out := c.mustRun("import", path)
	assert.Contains(t, out, "Subjects: 1 created, 0 updated")
	assert.Contains(t, out, "Topics:   2 created, 0 updated")

	out = c.mustRun("import", path)
	assert.Contains(t, out, "Subjects: 0 created, 1 updated")
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2025-03-10", false},
		{"2025-03-10T08:00:00Z", false},
		{" 2025-03-10 ", false},
		{"10/03/2025", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := parseTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("version"), "clivra (devel)")
}
