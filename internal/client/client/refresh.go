package client

import (
	"context"
	"slices"
	"sync"
)

type refreshState int

const (
	stateIdle refreshState = iota
	stateRefreshing
)

func (s refreshState) String() string {
	if s == stateRefreshing {
		return "refreshing"
	}
	return "idle"
}

type refreshResult struct {
	token string
	err   error
}

// refreshGate serializes token refreshes. The first caller to enter while
// idle becomes the leader and runs the refresh; later callers queue up and
// get the leader's outcome in arrival order.
type refreshGate struct {
	mu       sync.Mutex
	state    refreshState
	waiters  []chan refreshResult
	capacity int
}

func newRefreshGate(capacity int) *refreshGate {
	return &refreshGate{capacity: capacity}
}

// enter returns lead == true when the caller must run the refresh and call
// finish afterwards. Otherwise it returns the channel the result will be
// delivered on.
func (g *refreshGate) enter() (lead bool, wait chan refreshResult, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == stateIdle {
		g.state = stateRefreshing
		return true, nil, nil
	}
	if len(g.waiters) >= g.capacity {
		return false, nil, ErrRefreshQueueFull
	}
	wait = make(chan refreshResult, 1)
	g.waiters = append(g.waiters, wait)
	return false, wait, nil
}

// tryLead takes leadership only if no refresh is running.
func (g *refreshGate) tryLead() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != stateIdle {
		return false
	}
	g.state = stateRefreshing
	return true
}

// await blocks until the leader finishes or ctx is done. A cancelled
// waiter leaves the queue.
func (g *refreshGate) await(ctx context.Context, wait chan refreshResult) (string, error) {
	select {
	case res := <-wait:
		return res.token, res.err
	case <-ctx.Done():
		g.leave(wait)
		// The result may have been delivered while leaving.
		select {
		case res := <-wait:
			return res.token, res.err
		default:
		}
		return "", ctx.Err()
	}
}

func (g *refreshGate) leave(wait chan refreshResult) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i := slices.Index(g.waiters, wait); i >= 0 {
		g.waiters = slices.Delete(g.waiters, i, i+1)
	}
}

// finish returns the gate to idle and releases every waiter with res, in
// the order they queued. It returns the number of waiters released.
func (g *refreshGate) finish(res refreshResult) int {
	g.mu.Lock()
	waiters := g.waiters
	g.waiters = nil
	g.state = stateIdle
	g.mu.Unlock()

	for _, w := range waiters {
		w <- res
	}
	return len(waiters)
}

func (g *refreshGate) snapshot() (refreshState, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state, len(g.waiters)
}
