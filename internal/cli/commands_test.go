package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/interview"
	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/maturity"
)

func testOpts(t *testing.T) *RootOptions {
	t.Helper()
	dir := t.TempDir()
	return &RootOptions{
		Format:     "json",
		DBPath:     filepath.Join(dir, "ztmm.db"),
		BackupPath: filepath.Join(dir, "backup.json"),
	}
}

func decodeResponse(t *testing.T, buf *bytes.Buffer) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	return resp
}

func TestNewCommand(t *testing.T) {
	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewNewCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--customer", "Acme Corp", "--clouds", "AWS,GCP", "--industry", "Retail"})

	require.NoError(t, cmd.Execute())

	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Acme Corp", data["customerName"])
	assert.Equal(t, "v1", data["fileVersion"])
	assert.NotEmpty(t, data["assessmentId"])

	// The checkpoint exists afterwards in both tiers.
	assert.FileExists(t, opts.DBPath)
	assert.FileExists(t, opts.BackupPath)
}

func TestNewCommand_RejectsBadCustomer(t *testing.T) {
	opts := testOpts(t)
	cmd := NewNewCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--customer", "42"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestNewCommand_RejectsUnknownCloud(t *testing.T) {
	opts := testOpts(t)
	cmd := NewNewCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--customer", "Acme", "--clouds", "OVH"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func writeDocumentFile(t *testing.T, doc *assessment.Assessment) string {
	t.Helper()
	data, err := assessment.ExportJSON(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	doc := assessment.New()
	doc.Metadata.CustomerName = "Initech"
	path := writeDocumentFile(t, doc)

	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, "Initech", data["customerName"])
}

func TestValidateCommand_BadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"schemaVersion":"9.9"}`), 0o644))

	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, buf)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SCHEMA_INCOMPATIBLE", resp.Error.Code)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	opts := testOpts(t)
	cmd := NewValidateCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.json")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExportCommand_BumpsVersionAndWritesFile(t *testing.T) {
	doc := assessment.New()
	doc.Metadata.CustomerName = "Acme Corp"
	path := writeDocumentFile(t, doc)
	outDir := t.TempDir()

	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewExportCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--file", path, "--out", outDir})

	require.NoError(t, cmd.Execute())
	resp := decodeResponse(t, buf)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "v2", data["fileVersion"])

	exported := data["path"].(string)
	assert.Contains(t, filepath.Base(exported), "Acme_Corp_ZTMM_Assessment_")
	assert.Contains(t, filepath.Base(exported), "_v2.json")

	// The exported file round-trips and carries the new history entry.
	raw, err := os.ReadFile(exported)
	require.NoError(t, err)
	var out assessment.Assessment
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "v2", out.FileVersion)
	require.Len(t, out.ChangeHistory, 2)
	assert.Equal(t, assessment.ActionUpdated, out.ChangeHistory[1].Action)
}

func TestExportCommand_NoCheckpoint(t *testing.T) {
	opts := testOpts(t)
	cmd := NewExportCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--out", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvertCommand(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	session := interview.NewSession("Globex", []assessment.CloudProvider{assessment.CloudAzure}, clock)
	session.Record(interview.Response{
		QuestionID:            "data-classification",
		Transcript:            "tagging rolled out last quarter",
		DetectedMaturityLevel: maturity.Advanced,
		Timestamp:             "2024-06-01T10:05:00Z",
	})
	session.Complete(clock)

	raw, err := json.Marshal(session)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewConvertCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	resp := decodeResponse(t, buf)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Globex", data["customerName"])
	assert.Equal(t, float64(1), data["answered"])

	// The converted document became the checkpoint.
	assert.FileExists(t, opts.DBPath)
}

func TestConvertCommand_MalformedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	opts := testOpts(t)
	cmd := NewConvertCommand(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSummaryCommand(t *testing.T) {
	doc := assessment.New()
	doc.Metadata.CustomerName = "Initech"
	doc.Pillars.Data.Dimensions["dataClassification"] = &assessment.DimensionAssessment{
		MaturityLevel: maturity.Optimal,
	}
	doc.Pillars.Data.RecomputeMaturity()
	path := writeDocumentFile(t, doc)

	opts := testOpts(t)
	opts.Format = "text"
	buf := &bytes.Buffer{}
	cmd := NewSummaryCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--file", path})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "Initech")
	assert.Contains(t, out, "data")
	assert.Contains(t, out, "in-progress")
	assert.Contains(t, out, "Overall: 4.00 across 1 assessed dimensions")
}

func TestSummaryCommand_JSON(t *testing.T) {
	doc := assessment.New()
	doc.Metadata.CustomerName = "Initech"
	path := writeDocumentFile(t, doc)

	opts := testOpts(t)
	buf := &bytes.Buffer{}
	cmd := NewSummaryCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--file", path})

	require.NoError(t, cmd.Execute())
	resp := decodeResponse(t, buf)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	progress := data["progress"].([]any)
	assert.Len(t, progress, 4)
}
