package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGridWritesOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	out, err := execute(t,
		"--num-shares", "1000",
		"--ipo-price", "10",
		"--output-dir", dir,
		"--min-return", "0",
		"--max-return", "20",
		"--return-step", "10",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+filepath.Join(dir, "heatmap.tsv"))
	assert.Contains(t, out, "9 cells, CA -> WA")

	raw, err := os.ReadFile(filepath.Join(dir, "heatmap.tsv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "return1\\return2\t0\t10\t20", lines[0])

	_, err = os.Stat(filepath.Join(dir, "decisions.tsv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "scenarios.tsv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGridRejectsMissingInputs(t *testing.T) {
	cases := map[string][]string{
		"--num-shares":   {"--ipo-price", "10"},
		"--ipo-price":    {"--num-shares", "100"},
		"--moving-costs": {"--num-shares", "100", "--ipo-price", "10", "--moving-costs", "-1"},
		"return step":    {"--num-shares", "100", "--ipo-price", "10", "--return-step", "0"},
		"unknown":        {"--num-shares", "100", "--ipo-price", "10", "--destination", "ZZ"},

		"--num-shares must be a finite number": {"--num-shares", "NaN", "--ipo-price", "10"},
		"--max-return must be a finite number": {"--num-shares", "100", "--ipo-price", "10", "--max-return", "Inf"},
		"--interest-rate must be a finite":     {"--num-shares", "100", "--ipo-price", "10", "--interest-rate", "-Inf"},

		"limit is 1001": {"--num-shares", "100", "--ipo-price", "10",
			"--min-return", "0", "--max-return", "9223372036854775808", "--return-step", "1"},
	}
	for want, args := range cases {
		t.Run(want, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "results")
			_, err := execute(t, append(args, "--output-dir", dir)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), want)

			_, statErr := os.Stat(dir)
			assert.ErrorIs(t, statErr, os.ErrNotExist, "no output on failure")
		})
	}
}

func TestGridLogsSweptDimensions(t *testing.T) {
	run := func(args ...string) (*observer.ObservedLogs, error) {
		core, logs := observer.New(zap.InfoLevel)
		cmd := newCommand(&options{logger: zap.New(core)})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		cmd.SetArgs(append(args, "--output-dir", filepath.Join(t.TempDir(), "results")))
		return logs, cmd.Execute()
	}

	logs, err := run("--num-shares", "100", "--ipo-price", "10",
		"--min-return", "0", "--max-return", "20", "--return-step", "10")
	require.NoError(t, err)
	entries := logs.FilterMessage("grid swept").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 3, fields["rows"])
	assert.EqualValues(t, 3, fields["cols"])

	logs, err = run("--num-shares", "100", "--ipo-price", "10",
		"--min-return", "0", "--max-return", "9223372036854775808", "--return-step", "1")
	require.Error(t, err)
	assert.Zero(t, logs.FilterMessage("grid swept").Len())
}

func TestScenarioRejectsNonFiniteReturns(t *testing.T) {
	for _, flag := range []string{"--return1", "--return2"} {
		_, err := execute(t, "scenario",
			"--num-shares", "1000",
			"--ipo-price", "10",
			flag, "Inf",
			"--plain",
		)
		assert.ErrorContains(t, err, flag+" must be a finite number")
	}

	_, err := execute(t, "rank", "--num-shares", "1000", "--ipo-price", "NaN", "--plain")
	assert.ErrorContains(t, err, "--ipo-price must be a finite number")
}

func TestScenarioPlain(t *testing.T) {
	out, err := execute(t, "scenario",
		"--num-shares", "1000",
		"--ipo-price", "10",
		"--return1", "6",
		"--return2", "7",
		"--plain",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "(`HOLD_12M_STAY`) for $8,637.41")
	assert.Contains(t, out, "| Origin / destination | CA / WA |")
}

func TestScenarioConfigWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
origin: NY
destination: TX
scenario:
  num_shares: 1000
  ipo_price: 10
  interest_rate: 4
`), 0o644))

	out, err := execute(t, "scenario", "--config", p, "--origin", "CA", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "| Origin / destination | CA / TX |")
	assert.Contains(t, out, "| Shares granted | 1000 |")
}

func TestRankPlain(t *testing.T) {
	out, err := execute(t, "rank",
		"--num-shares", "100000",
		"--ipo-price", "10",
		"--return1", "40",
		"--plain",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "# Destinations from CA")
	assert.Contains(t, out, "| 1 | Florida (FL) |")
	assert.NotContains(t, out, "California (CA)")
}

func TestJurisdictionsYAML(t *testing.T) {
	out, err := execute(t, "jurisdictions", "--yaml")
	require.NoError(t, err)

	var doc struct {
		Jurisdictions []struct {
			Code string `yaml:"code"`
		} `yaml:"jurisdictions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	var codes []string
	for _, j := range doc.Jurisdictions {
		codes = append(codes, j.Code)
	}
	assert.Equal(t, []string{"CA", "FL", "NV", "NY", "OR", "TX", "WA"}, codes)
}
