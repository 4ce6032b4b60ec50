// Package ratelimit implements the token-window check performed before
// each vendor API call. The window math is pure: state in, state out;
// the Gate wraps it with a mutex for process-local coordination.
package ratelimit

import (
	"sync"
	"time"
)

// WindowState is the current counter for one window.
type WindowState struct {
	Count     int
	WindowEnd time.Time
}

// Config bounds calls per window.
type Config struct {
	Limit  int
	Window time.Duration
}

// Result reports whether a call may proceed.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Check evaluates one acquisition against the window. Deterministic:
// the caller supplies now and persists the returned state.
func Check(state WindowState, cfg Config, now time.Time) (Result, WindowState) {
	windowEnd := now.Truncate(cfg.Window).Add(cfg.Window)

	if now.After(state.WindowEnd) || state.WindowEnd.IsZero() {
		state = WindowState{WindowEnd: windowEnd}
	}

	if state.Count < cfg.Limit {
		state.Count++
		return Result{
			Allowed:   true,
			Remaining: cfg.Limit - state.Count,
			ResetAt:   state.WindowEnd,
		}, state
	}

	return Result{
		Allowed: false,
		ResetAt: state.WindowEnd,
	}, state
}

// Gate is the process-local token gate shared by concurrent fetchers.
type Gate struct {
	mu    sync.Mutex
	cfg   Config
	state WindowState
	now   func() time.Time
}

func NewGate(cfg Config) *Gate {
	return &Gate{cfg: cfg, now: time.Now}
}

// Allow consumes one token if available.
func (g *Gate) Allow() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, next := Check(g.state, g.cfg, g.now())
	g.state = next
	return res
}
