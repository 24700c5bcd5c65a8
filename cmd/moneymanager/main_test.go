package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "file")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

var addedID = regexp.MustCompile(`^added (\d+):`)

func TestRunAddListRemove(t *testing.T) {
	setupEnv(t)

	code, out, errOut := runCmd(t, "add", "-type", "income", "-amount", "1000", "-category", "Job", "-desc", "Salary", "-date", "2024-01-15")
	if code != 0 {
		t.Fatalf("add exit %d: %s", code, errOut)
	}
	m := addedID.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("unexpected add output %q", out)
	}
	salaryID := m[1]

	code, _, errOut = runCmd(t, "add", "-type", "expense", "-amount", "400", "-category", "Housing", "-desc", "Rent", "-date", "2024-01-20")
	if code != 0 {
		t.Fatalf("add exit %d: %s", code, errOut)
	}

	_, out, _ = runCmd(t, "list", "-filter", "income")
	if !strings.Contains(out, "Salary") || strings.Contains(out, "Rent") {
		t.Errorf("income list = %q", out)
	}

	_, out, _ = runCmd(t, "summary")
	for _, want := range []string{"Income:   1000.00", "Expenses: 400.00", "Balance:  600.00", "Job", "Housing", "January 2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	_, out, _ = runCmd(t, "info")
	if !strings.Contains(out, "transactions: 2") {
		t.Errorf("info = %q", out)
	}

	code, out, _ = runCmd(t, "rm", salaryID)
	if code != 0 || !strings.Contains(out, "removed "+salaryID) {
		t.Errorf("rm exit %d: %q", code, out)
	}
	code, out, _ = runCmd(t, "rm", salaryID)
	if code != 0 || !strings.Contains(out, "not found") {
		t.Errorf("second rm exit %d: %q", code, out)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, 2},
		{"unknown command", []string{"edit"}, 2},
		{"zero amount", []string{"add", "-type", "income", "-amount", "0", "-category", "Job", "-desc", "Salary"}, 1},
		{"bad type", []string{"add", "-type", "gift", "-amount", "5", "-category", "Job", "-desc", "Salary"}, 1},
		{"bad date", []string{"add", "-type", "income", "-amount", "5", "-category", "Job", "-desc", "Salary", "-date", "15/01/2024"}, 1},
		{"bad filter", []string{"list", "-filter", "Income"}, 1},
		{"rm without id", []string{"rm"}, 2},
		{"rm non-numeric", []string{"rm", "abc"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCmd(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit = %d, want %d", code, tt.code)
			}
		})
	}

	_, out, _ := runCmd(t, "info")
	if !strings.Contains(out, "nothing saved yet") {
		t.Errorf("rejected input must not save: %q", out)
	}
}
