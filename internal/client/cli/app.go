package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/config"
	"github.com/dmitrijs2005/aideasy/internal/client/models"
	"github.com/dmitrijs2005/aideasy/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// App is the interactive client. Session state is guarded by mu because
// the connectivity watcher and the session-expired hook run on other
// goroutines.
type App struct {
	config    *config.Config
	auth      services.AuthService
	schedule  services.ScheduleService
	directory services.DirectoryService
	reader    *bufio.Reader
	out       io.Writer
	now       func() time.Time

	mu       sync.Mutex
	mode     Mode
	userName string

	view   calendar.ViewKind
	day    time.Time
	filter models.JobFilter
}

func NewApp(
	c *config.Config,
	auth services.AuthService,
	schedule services.ScheduleService,
	directory services.DirectoryService,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		config:    c,
		auth:      auth,
		schedule:  schedule,
		directory: directory,
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
		view:      calendar.ViewWeek,
	}
}

// Run restores a stored session, starts the connectivity watcher and
// blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to the scheduling CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	ok, err := a.auth.IsAuthenticated(ctx)
	if err != nil || !ok {
		fmt.Fprintln(a.out, "Not logged in, type 'login' to start")
		return
	}
	p, err := a.auth.Profile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not restore session: %v\n", err)
		return
	}
	a.setUser(p.Login)
	fmt.Fprintf(a.out, "Welcome back, %s\n", p.FullName)
}

// OnSessionExpired is installed as the API client's session-expired hook.
func (a *App) OnSessionExpired() {
	a.setUser("")
	fmt.Fprintln(a.out, "session expired, please log in")
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	a.userName = name
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s += string(a.mode) + " "
	}
	s += string(a.view)
	return fmt.Sprintf("(%s)", s)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
