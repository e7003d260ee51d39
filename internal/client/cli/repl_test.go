package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool                  { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error { s.calls = append(s.calls, "register"); return nil }
func (s *stubExec) Login(ctx context.Context) error    { s.calls = append(s.calls, "login"); return nil }
func (s *stubExec) Logout(ctx context.Context) error   { s.calls = append(s.calls, "logout"); return nil }
func (s *stubExec) Whoami(ctx context.Context) error   { s.calls = append(s.calls, "whoami"); return nil }
func (s *stubExec) Refresh(ctx context.Context) error  { s.calls = append(s.calls, "refresh"); return nil }
func (s *stubExec) Status(ctx context.Context) error   { s.calls = append(s.calls, "status"); return nil }
func (s *stubExec) Dashboard(ctx context.Context) error {
	s.calls = append(s.calls, "dashboard")
	return nil
}

func (s *stubExec) Transactions(ctx context.Context) error {
	s.calls = append(s.calls, "transactions")
	return nil
}

func (s *stubExec) Logs(ctx context.Context) error {
	s.calls = append(s.calls, "logs")
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	return &lines
}

func runWithInput(t *testing.T, a execIface, input string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), a, func() string { return "guest" }, scanner)
}

func TestREPLDispatchesCommands(t *testing.T) {
	captureOutput(t)
	ex := &stubExec{}

	runWithInput(t, ex, "login\nwhoami\nstatus\ntransactions\nlogs\nexit\n")

	assert.Equal(t, []string{"login", "whoami", "status", "transactions", "logs"}, ex.calls)
}

func TestREPLSkipsBlankLines(t *testing.T) {
	captureOutput(t)
	ex := &stubExec{}

	runWithInput(t, ex, "\n   \nlogout\nquit\n")

	assert.Equal(t, []string{"logout"}, ex.calls)
}

func TestREPLReportsUnknownCommand(t *testing.T) {
	out := captureOutput(t)
	ex := &stubExec{}

	runWithInput(t, ex, "frobnicate\nexit\n")

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Unknown command: frobnicate")
}

func TestREPLHelpDependsOnLoginState(t *testing.T) {
	out := captureOutput(t)
	runWithInput(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out, ""), "register, login, exit")

	out = captureOutput(t)
	runWithInput(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out, ""), "whoami, refresh, status, dashboard, transactions, logs, logout, exit")
}

func TestREPLExitsOnEOF(t *testing.T) {
	captureOutput(t)
	ex := &stubExec{}

	// No exit command; the scanner just runs dry.
	runWithInput(t, ex, "login\n")

	assert.Equal(t, []string{"login"}, ex.calls)
}
