package main

import (
	"os"
	"path/filepath"
	"testing"

	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return newCLI().Run(append([]string{"frolf", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
}

func TestCLI_RoundMoneyAndReport(t *testing.T) {
	pterm.DisableOutput()
	t.Cleanup(pterm.EnableOutput)

	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(dir, "frolf.db")+"?_pragma=foreign_keys(1)")
	t.Setenv("ENV", "test")

	require.NoError(t, runCLI(t, "players"))
	require.NoError(t, runCLI(t, "round", "create", "--course", "1", "--date", "2015-01-12", "-p", "1", "-p", "2", "-p", "3"))
	require.NoError(t, runCLI(t, "round", "score", "-s", "1:-3:-2", "-s", "2:0:1", "-s", "3:2:2", "1"))
	require.NoError(t, runCLI(t, "round", "list", "--from", "2015-01-01"))
	require.NoError(t, runCLI(t, "money", "settle", "--stages", "2,7", "-p", "1:3", "-p", "2", "-p", "3", "1"))
	require.NoError(t, runCLI(t, "money", "show", "1"))

	xlsx := filepath.Join(dir, "report.xlsx")
	chart := filepath.Join(dir, "points.png")
	require.NoError(t, runCLI(t, "report", "--from", "2015-01-01", "--to", "2015-12-31", "--xlsx", xlsx, "--chart", chart))
	for _, path := range []string{xlsx, chart} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}

	err := runCLI(t, "round", "create", "--course", "2", "--date", "2015-01-12", "-p", "1")
	assert.ErrorIs(t, err, roundservice.ErrDuplicateRoundDate)

	err = runCLI(t, "round", "reschedule", "--date", "2015-01-13", "1")
	assert.ErrorIs(t, err, roundservice.ErrRoundSettled)

	assert.ErrorIs(t, runCLI(t, "round", "show", "abc"), errBadSpec)
	assert.Error(t, runCLI(t, "report"))
}
