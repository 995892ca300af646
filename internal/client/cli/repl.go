package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	ShowView(ctx context.Context, view calendar.ViewKind, args []string) error
	Move(ctx context.Context, n int) error
	Today(ctx context.Context) error
	SetTeam(ctx context.Context, args []string) error
	ShowJob(ctx context.Context, args []string) error
	Teams(ctx context.Context) error
	Clients(ctx context.Context) error
	Users(ctx context.Context) error
	JobTypes(ctx context.Context) error
	AddJob(ctx context.Context, args []string) error
	Reschedule(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	DeleteJob(ctx context.Context, args []string) error
	AddTeam(ctx context.Context, args []string) error
	RenameTeam(ctx context.Context, args []string) error
	DeleteTeam(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, status, exit"
	helpLoggedIn  = "Available commands: day|week|month|agenda [YYYY-MM-DD], next, prev, today, " +
		"team <id|all>, job <id>, add, reschedule, set-status, delete, teams, team-add, team-rename, " +
		"team-delete, clients, users, types, status, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the scheduling CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Commands that need a session are refused
// until the user logs in. Handler errors are printed and the loop goes on.
// The loop exits on EOF, when ctx is done or when the user types "exit" or
// "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ae %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			report(a.Login(ctx))
			continue
		case "status":
			report(a.Status(ctx))
			continue
		}

		run, ok := sessionCommand(ctx, a, cmd, args)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			report(errNotLoggedIn)
			continue
		}
		report(run())
	}
}

// sessionCommand resolves the commands that require a session.
func sessionCommand(ctx context.Context, a execIface, cmd string, args []string) (func() error, bool) {
	if view, err := calendar.ParseViewKind(cmd); err == nil {
		return func() error { return a.ShowView(ctx, view, args) }, true
	}

	switch cmd {
	case "next", "n":
		return func() error { return a.Move(ctx, 1) }, true
	case "prev", "p":
		return func() error { return a.Move(ctx, -1) }, true
	case "today":
		return func() error { return a.Today(ctx) }, true
	case "team":
		return func() error { return a.SetTeam(ctx, args) }, true
	case "job":
		return func() error { return a.ShowJob(ctx, args) }, true
	case "teams":
		return func() error { return a.Teams(ctx) }, true
	case "clients":
		return func() error { return a.Clients(ctx) }, true
	case "users":
		return func() error { return a.Users(ctx) }, true
	case "types":
		return func() error { return a.JobTypes(ctx) }, true
	case "add":
		return func() error { return a.AddJob(ctx, args) }, true
	case "reschedule":
		return func() error { return a.Reschedule(ctx, args) }, true
	case "set-status":
		return func() error { return a.SetStatus(ctx, args) }, true
	case "delete":
		return func() error { return a.DeleteJob(ctx, args) }, true
	case "team-add":
		return func() error { return a.AddTeam(ctx, args) }, true
	case "team-rename":
		return func() error { return a.RenameTeam(ctx, args) }, true
	case "team-delete":
		return func() error { return a.DeleteTeam(ctx, args) }, true
	case "logout":
		return func() error { return a.Logout(ctx) }, true
	}
	return nil, false
}

// report prints err. An expired session was already announced by the
// client hook.
func report(err error) {
	switch {
	case err == nil, errors.Is(err, client.ErrSessionExpired):
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("error: server unavailable")
	case errors.Is(err, client.ErrNotFound):
		printlnFn("error: not found")
	default:
		printlnFn("error:", err)
	}
}
