// Package interrupt turns termination signals into context cancellation.
//
// A Gate can be held while an interactive child owns the terminal. Interrupts
// that arrive during a hold reach the child only; the run keeps going.
package interrupt

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

var defaultGate = &Gate{}

// Default returns the process-wide gate.
func Default() *Gate {
	return defaultGate
}

// Gate decides whether an interrupt cancels the run.
type Gate struct {
	mu    sync.Mutex
	held  int
	drain chan os.Signal
}

// Hold suppresses interrupts until the returned func is called. Holds nest.
func (g *Gate) Hold() (release func()) {
	g.mu.Lock()
	g.held++
	if g.held == 1 {
		// Keeps the default SIGINT action from terminating the process when
		// nothing else is listening.
		g.drain = make(chan os.Signal, 1)
		signal.Notify(g.drain, os.Interrupt)
		go discard(g.drain)
	}
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(g.release)
	}
}

func (g *Gate) release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.held--
	if g.held == 0 {
		signal.Stop(g.drain)
		close(g.drain)
		g.drain = nil
	}
}

// Held reports whether interrupts are currently suppressed.
func (g *Gate) Held() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.held > 0
}

// NotifyContext returns a copy of parent that is cancelled by the first of
// signals to arrive, except interrupts received while the gate is held.
func (g *Gate) NotifyContext(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	ctx, cancel := g.watch(parent, ch)
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}

func (g *Gate) watch(parent context.Context, signals <-chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				if sig == os.Interrupt && g.Held() {
					continue
				}
				cancel()
				return
			}
		}
	}()
	return ctx, cancel
}

func discard(ch <-chan os.Signal) {
	for range ch {
	}
}
