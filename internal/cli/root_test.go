package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswin2007cs/scms/internal/store"
)

func seedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docs := map[string]string{
		store.StudentsDoc:   `{"students":[{"gmail":"a@x.com","password":"pw","name":"Asha","department":"CS","semester":3}]}`,
		store.CoursesDoc:    `{"courses":[{"id":"C1","name":"Algorithms","department":"CS","semester":"3"},{"id":"C2","name":"Circuits","department":"EE","semester":"3"}]}`,
		store.AttendanceDoc: `{"records":[{"studentEmail":"a@x.com","courseId":"C1","present":3,"total":4}]}`,
		store.LeavesDoc:     `[{"id":2,"studentEmail":"a@x.com","status":"Pending","reason":"b"},{"id":1,"studentEmail":"z@x.com","status":"Pending"}]`,
	}
	for name, body := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_BACKEND", "file")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "scmsctl", cmd.Use)

	for _, name := range []string{"stats", "attendance", "leaves"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	flag := cmd.PersistentFlags().Lookup("data-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestStats(t *testing.T) {
	out, err := run(t, "--data-dir", seedDir(t), "stats")
	require.NoError(t, err)
	assert.JSONEq(t, `{"students":1,"courses":2,"leaves":2}`, out)
}

func TestAttendance(t *testing.T) {
	dir := seedDir(t)

	out, err := run(t, "--data-dir", dir, "attendance", "a@x.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"student": {"name":"Asha","department":"CS","semester":"3"},
		"subjects": [{"code":"C1","name":"Algorithms","present":3,"total":4,"percentage":75}]
	}`, out)

	_, err = run(t, "--data-dir", dir, "attendance", "nobody@x.com")
	assert.ErrorContains(t, err, "no student")

	_, err = run(t, "--data-dir", dir, "attendance")
	assert.Error(t, err, "gmail argument is required")
}

func TestLeaves(t *testing.T) {
	dir := seedDir(t)

	out, err := run(t, "--data-dir", dir, "leaves", "a@x.com")
	require.NoError(t, err)
	var leaves []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &leaves))
	require.Len(t, leaves, 1)
	assert.Equal(t, "b", leaves[0]["reason"])

	out, err = run(t, "--data-dir", dir, "leaves", "nobody@x.com")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}
