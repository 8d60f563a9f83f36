package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/timerq/timerq/cmd/common"
	"github.com/timerq/timerq/internal/runloop"
	"github.com/timerq/timerq/pkg/logger"
	"github.com/timerq/timerq/pkg/timerlib"
)

// countdown pairs a scheduled timer with the bar visualizing it.
type countdown struct {
	bar    *mpb.Bar
	period time.Duration
}

func demo(ctx *cli.Context) error {
	if timerCount <= 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("count must be at least 1"))
	}
	if basePeriod <= 0 || refreshRate <= 0 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("period and refresh must be positive"))
	}

	var lg logger.Logger = logger.NewNopLogger()
	if verbose {
		lg = logger.NewStandardLogger(log.New(os.Stderr, "timerq ", log.LstdFlags))
	}

	// The run loop plays the host application's main loop: every fired
	// timer task executes on its single consumer goroutine.
	loop := runloop.New(&runloop.Config{Logger: lg})
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(runCtx)
	}()

	svc := timerlib.New(timerlib.WithQueue(loop), timerlib.WithLogger(lg))
	if err := svc.Start(); err != nil {
		common.PrintRuntimeErr(ctx, "demo", "service_start", err)
		return nil
	}
	defer svc.Stop()

	p := mpb.New(mpb.WithWidth(48))
	bars := make(map[timerlib.TimerID]countdown, timerCount)
	var fired sync.WaitGroup

	for i := 1; i <= timerCount; i++ {
		period := time.Duration(i) * basePeriod
		label := fmt.Sprintf("timer %d (%s)", i, period)
		bar := common.InitCountdownBar(p, label, period)

		fired.Add(1)
		id, err := svc.SetTimeout(period, func() {
			bar.SetCurrent(period.Milliseconds())
			fired.Done()
		})
		if err != nil {
			common.PrintRuntimeErr(ctx, "demo", "set_timeout", err)
			return nil
		}
		bars[id] = countdown{bar: bar, period: period}
	}

	// A recurring timer advances the bars between firings. The bars map
	// is read-only from here on, so the task needs no extra locking.
	refreshID, err := svc.SetInterval(refreshRate, func() {
		for _, info := range svc.Timers() {
			cd, ok := bars[info.ID]
			if !ok {
				continue
			}
			elapsed := cd.period - info.Remaining
			if elapsed < 0 {
				elapsed = 0
			}
			cd.bar.SetCurrent(elapsed.Milliseconds())
		}
	})
	if err != nil {
		common.PrintRuntimeErr(ctx, "demo", "set_interval", err)
		return nil
	}
	if verbose {
		svc.LogSchedule()
	}

	fired.Wait()
	if err := svc.Cancel(refreshID); err != nil {
		common.PrintRuntimeErr(ctx, "demo", "cancel_refresh", err)
	}
	p.Wait()

	cancel()
	<-loopDone
	return nil
}
