package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
)

// signalWatcher cancels a run on the first shutdown signal and forces an exit
// on the second. The first cancel is observed between cells; a cell being
// drawn or a page being printed finishes first.
type signalWatcher struct {
	stderr io.Writer
	exit   func(code int)
	sigs   chan os.Signal
}

// notifyContext returns a context canceled by the first shutdown signal.
// Call stop to release the signal handler.
func notifyContext(parent context.Context, stderr io.Writer) (context.Context, context.CancelFunc) {
	w := &signalWatcher{stderr: stderr, exit: os.Exit, sigs: make(chan os.Signal, 2)}
	signal.Notify(w.sigs, shutdownSignals...)
	ctx, stop := w.watch(parent)
	return ctx, func() {
		signal.Stop(w.sigs)
		stop()
	}
}

func (w *signalWatcher) watch(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-w.sigs:
			fmt.Fprintf(w.stderr, "\n%v: stopping after the current cell (repeat to quit now)\n", sig)
			cancel()
		case <-done:
			return
		}
		select {
		case <-w.sigs:
			w.exit(ExitInterrupted)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			close(done)
			cancel()
		})
	}
}
