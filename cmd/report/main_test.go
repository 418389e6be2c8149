package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{
  "requests": [
    {"id": "r1", "status": "New", "department": "Roads", "submission_date": "2026-03-01T08:00:00Z"},
    {"id": "r2", "status": "Closed", "department": "Parks", "submission_date": "2026-03-02T08:00:00Z",
     "started_at": "2026-03-02T08:30:00Z", "answered_at": "2026-03-02T09:00:00Z", "closed_at": "2026-03-02T12:00:00Z"},
    {"id": "r3", "status": "Answered", "department": "Roads", "submission_date": "2026-03-09T08:00:00Z",
     "started_at": "2026-03-09T08:10:00Z", "answered_at": "2026-03-09T08:40:00Z"},
    {"id": "r4", "status": "Closed", "department": "Roads", "submission_date": "2026-01-15T08:00:00Z",
     "closed_at": "2026-01-16T08:00:00Z"}
  ],
  "contacts": [
    {"id": "c1", "status": "New", "submission_date": "2026-03-03T10:00:00Z", "subject": "hi", "message": "hello"}
  ]
}`

func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runReport(t *testing.T, args ...string) (map[string]any, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(sampleExport), &stdout, &stderr)
	if err != nil {
		return nil, stderr.String(), err
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	return out, stderr.String(), nil
}

func TestRunComputesReport(t *testing.T) {
	path := writeExport(t, sampleExport)
	out, _, err := runReport(t, "--input", path, "--from", "2026-03-01", "--to", "2026-03-10", "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)

	assert.EqualValues(t, 3, out["total_count"])
	assert.EqualValues(t, 1, out["stale_count"])
	assert.Len(t, out["trend"], 14)
	contacts := out["contacts_by_status"].(map[string]any)
	assert.EqualValues(t, 1, contacts["New"])

	score := out["score"].(map[string]any)
	assert.Len(t, score["factors"], 6)
	assert.Equal(t, "2026-03-10T12:00:00Z", out["generated_at"])
}

func TestRunReadsStdinAndFilters(t *testing.T) {
	out, _, err := runReport(t, "-i", "-", "--department", "Roads", "--status", "Closed", "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)
	assert.EqualValues(t, 1, out["total_count"])
}

func TestRunSeedRotatesOnlyTheNote(t *testing.T) {
	first, _, err := runReport(t, "-i", "-", "--seed", "0", "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)
	second, _, err := runReport(t, "-i", "-", "--seed", "1", "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, first["score"], second["score"])
	firstRecs := first["recommendations"].([]any)
	secondRecs := second["recommendations"].([]any)
	require.Equal(t, len(firstRecs), len(secondRecs))
	assert.NotEqual(t, firstRecs[len(firstRecs)-1], secondRecs[len(secondRecs)-1])
}

func TestRunEmptyExport(t *testing.T) {
	path := writeExport(t, `{"requests": [], "contacts": []}`)
	out, _, err := runReport(t, "--input", path, "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)
	assert.EqualValues(t, 0, out["total_count"])
	assert.Len(t, out["recommendations"], 2)
}

func TestRunRejectsBadFlags(t *testing.T) {
	path := writeExport(t, sampleExport)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", nil, "--input is required"},
		{"bad from", []string{"-i", path, "--from", "March"}, "invalid --from"},
		{"inverted range", []string{"-i", path, "--from", "2026-03-10", "--to", "2026-03-01"}, "is after"},
		{"unknown status", []string{"-i", path, "--status", "Pending"}, "unknown --status"},
		{"bad timezone", []string{"-i", path, "--tz", "Mars/Olympus"}, "invalid --tz"},
		{"bad now", []string{"-i", path, "--now", "yesterday"}, "invalid --now"},
		{"missing file", []string{"-i", filepath.Join(t.TempDir(), "nope.json")}, "open export"},
		{"extra argument", []string{"-i", path, "extra"}, "unexpected argument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runReport(t, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunRejectsUnknownStatuses(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "request",
			body: `{"requests": [{"id": "r1", "status": "Pending", "department": "Roads", "submission_date": "2026-03-01T08:00:00Z"}]}`,
			want: `request 0 (id "r1"): unknown status "Pending"`,
		},
		{
			name: "missing request status",
			body: `{"requests": [{"id": "r2", "department": "Roads", "submission_date": "2026-03-01T08:00:00Z"}]}`,
			want: `unknown status ""`,
		},
		{
			name: "contact",
			body: `{"requests": [], "contacts": [{"id": "c1", "status": "Answered", "submission_date": "2026-03-03T10:00:00Z"}]}`,
			want: `contact 0 (id "c1"): unknown status "Answered"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeExport(t, tc.body)
			_, _, err := runReport(t, "--input", path, "--now", "2026-03-10T12:00:00Z")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunLogsToStderr(t *testing.T) {
	_, stderr, err := runReport(t, "-i", "-", "--log-level", "info", "--now", "2026-03-10T12:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"message":"report computed"`)
}
