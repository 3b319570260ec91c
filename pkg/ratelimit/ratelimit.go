// Package ratelimit implements a fixed-window request counter keyed by
// client identifier. State is process-local and not persisted: restarts
// reset all windows, and multiple instances each count independently.
package ratelimit

import (
	"sync"
	"time"
)

const sweepInterval = 60 * time.Second

type window struct {
	count   int
	resetAt time.Time
}

type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	windowLen time.Duration
	max       int

	stop     chan struct{}
	stopOnce sync.Once
}

// New starts a limiter allowing max calls per key within windowLen, with a
// background sweep that drops expired windows.
func New(windowLen time.Duration, max int) *Limiter {
	l := &Limiter{
		windows:   make(map[string]*window),
		windowLen: windowLen,
		max:       max,
		stop:      make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow reports whether a call for key fits in the current window. The
// read-compare-increment runs under one mutex hold with no I/O in between.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.windowLen)}
		return true
	}

	if w.count >= l.max {
		return false
	}

	w.count++
	return true
}

// Sweep removes windows whose reset time has passed.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

// ActiveKeys returns the number of tracked windows, expired or not.
func (l *Limiter) ActiveKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}
