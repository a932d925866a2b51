package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uciwire/uciwire/internal/event"
	"github.com/uciwire/uciwire/internal/i18n"
	"github.com/uciwire/uciwire/internal/util"
)

const gracefulTimeout = 5 * time.Second

// SetupTerminationHandler cancels the returned context on SIGINT/SIGTERM and
// forces an exit if shutdown does not complete within the graceful timeout.
func SetupTerminationHandler(parentCtx context.Context, bus *event.Bus) context.Context {
	ctx, cancel := context.WithCancel(parentCtx)

	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-termCh
		util.Info(i18n.T("termination_signal", nil), nil)
		if bus != nil {
			bus.Publish(event.Event{Type: event.TerminationSignal, Ctx: ctx})
		}
		cancel()

		go func() {
			time.Sleep(gracefulTimeout)
			util.Error(i18n.T("forced_exit", nil), nil)
			os.Exit(1)
		}()
	}()

	return ctx
}
