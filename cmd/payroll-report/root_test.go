package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKindsCmd(t *testing.T) {
	out, err := run("kinds")
	require.NoError(t, err)

	var kinds []report.KindResponse
	require.NoError(t, json.Unmarshal([]byte(out), &kinds))
	require.Len(t, kinds, 4)
	assert.Equal(t, report.KindSummary, kinds[0].Kind)
	assert.Equal(t, "summary.xlsx", kinds[0].Filename)
}

func TestBuildCmd_RejectsInputBeforeConnecting(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing department", []string{"build", "--month-year", "04/2024"}, "department"},
		{"unknown kind", []string{"build", "--kind", "payslip", "--department", "7c9e6679-7425-40de-944b-e07fc1f90ae7"}, "unknown report kind"},
		{"malformed period", []string{"build", "--month-year", "2024-04", "--department", "7c9e6679-7425-40de-944b-e07fc1f90ae7"}, "month_year"},
		{"bad department id", []string{"build", "--month-year", "04/2024", "--department", "acc"}, "department"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := run(c.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}
