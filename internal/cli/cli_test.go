package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-pipelinereport/internal/config"
	"go-pipelinereport/internal/utils"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRuntime(t *testing.T) *appRuntime {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pipeline.db")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE pipeline_logs (id INTEGER PRIMARY KEY, symbol TEXT, status TEXT, message TEXT, "timestamp" TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO pipeline_logs VALUES
		(1, 'ETL_DAILY', 'ok', NULL, '2026-10-19 11:00:00'),
		(2, 'ETL_DAILY', 'fail', 'timeout', '2026-10-19 10:00:00'),
		(3, 'ETL_DAILY', 'ok', NULL, '2026-10-18 06:00:00')`)
	require.NoError(t, err)

	return &appRuntime{
		cfg: &config.Config{
			DBDriver:       "sqlite3",
			DBDSN:          dbPath,
			DBMaxOpenConns: 1,
			LogsTable:      "pipeline_logs",
			ReportFormat:   "markdown-html",
			ReportOutput:   filepath.Join(dir, "out", "report.md"),
			ReportTitle:    "Pipeline Execution Report",
			QueryTimeout:   5 * time.Second,
			RenderTimeout:  5 * time.Second,
		},
		logger: zap.NewNop(),
	}
}

func TestGenerateCommand_WritesBothFiles(t *testing.T) {
	rt := testRuntime(t)
	cmd := newGenerateCommand(rt)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--now", "2026-10-19T12:00:00Z"})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())

	md, err := os.ReadFile(rt.cfg.ReportOutput)
	require.NoError(t, err)
	assert.Contains(t, string(md), "- Total executions: 2")

	html, err := os.ReadFile(strings.TrimSuffix(rt.cfg.ReportOutput, ".md") + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<td>timeout</td>")
}

func TestGenerateCommand_TableAsJSON(t *testing.T) {
	rt := testRuntime(t)
	out := filepath.Join(t.TempDir(), "table.html")
	cmd := newGenerateCommand(rt)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--format", "html-table", "--out", out, "--now", "2026-10-19T12:00:00Z", "--json"})

	require.NoError(t, cmd.Execute())

	var result struct {
		Format  string   `json:"format"`
		Paths   []string `json:"paths"`
		Summary struct {
			TotalExecutions int `json:"totalExecutions"`
		} `json:"summary"`
		Rows []struct {
			NumberOfExecution int `json:"numberOfExecution"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "html-table", result.Format)
	assert.Equal(t, []string{out}, result.Paths)
	assert.Equal(t, 2, result.Summary.TotalExecutions)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, 2, result.Rows[0].NumberOfExecution)
	assert.FileExists(t, out)
}

func TestGenerateCommand_RejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"--format", "pdf"},
		{"--now", "yesterday"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			cmd := newGenerateCommand(testRuntime(t))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(args)
			assert.Error(t, cmd.Execute())
		})
	}
}

func TestTokenCommand(t *testing.T) {
	rt := &appRuntime{cfg: &config.Config{JWTSecret: "cli-test-secret"}, logger: zap.NewNop()}
	cmd := newTokenCommand(rt)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--subject", "dashboard", "--ttl", "1h"})

	require.NoError(t, cmd.Execute())

	claims, err := utils.ValidateToken(strings.TrimSpace(stdout.String()), "cli-test-secret")
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	cmd := newTokenCommand(&appRuntime{cfg: &config.Config{}, logger: zap.NewNop()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
