package analyzer

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/vermi/gnlp-analyze/internal/logging"
)

// Controller turns an external interrupt into a cooperative stop. The first
// signal moves the run from running to stopping and cancels the derived
// context; the analysis loop notices between documents, flushes what it has
// and exits cleanly. Later signals are ignored.
type Controller struct {
	ctx      context.Context
	cancel   context.CancelFunc
	stopping atomic.Bool
	once     sync.Once
	log      *slog.Logger
}

// NewController derives the run context that every stage polls
func NewController(parent context.Context) *Controller {
	ctx, cancel := context.WithCancel(parent)
	return &Controller{
		ctx:    ctx,
		cancel: cancel,
		log:    logging.WithComponent("control"),
	}
}

// Context returns the cancellable run context
func (c *Controller) Context() context.Context {
	return c.ctx
}

// Stopping reports whether a stop has been requested
func (c *Controller) Stopping() bool {
	return c.stopping.Load()
}

// Stop requests a cooperative stop. Safe to call from any goroutine, any
// number of times, including before any work has started.
func (c *Controller) Stop() {
	c.once.Do(func() {
		c.stopping.Store(true)
		c.log.Warn("stop requested, finishing current document")
		c.cancel()
	})
}

// Watch forwards the given signals to Stop until the returned release
// function is called
func (c *Controller) Watch(sigs ...os.Signal) (release func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			c.Stop()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
