package interrupt

import (
	"context"
	"os"
)

// Watch exposes the signal loop with an injected channel.
func (g *Gate) Watch(parent context.Context, signals <-chan os.Signal) (context.Context, context.CancelFunc) {
	return g.watch(parent, signals)
}
