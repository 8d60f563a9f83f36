package cmd

import (
	"time"

	"github.com/urfave/cli"
)

var (
	timerCount  int
	basePeriod  time.Duration
	refreshRate time.Duration
	verbose     bool
)

var demoFlags = []cli.Flag{
	cli.IntFlag{
		Name:        "count, n",
		Usage:       "number of one-shot countdown timers to schedule",
		EnvVar:      "TIMERQ_DEMO_COUNT",
		Destination: &timerCount,
		Value:       DEF_TIMER_COUNT,
	},
	cli.DurationFlag{
		Name:        "period, p",
		Usage:       "base period; timer i counts down i×period",
		EnvVar:      "TIMERQ_DEMO_PERIOD",
		Destination: &basePeriod,
		Value:       DEF_BASE_PERIOD,
	},
	cli.DurationFlag{
		Name:        "refresh, r",
		Usage:       "how often the countdown bars are redrawn",
		Destination: &refreshRate,
		Value:       DEF_REFRESH_RATE,
	},
	cli.BoolFlag{
		Name:        "verbose, V",
		Usage:       "log worker and run loop lifecycle to stderr",
		Destination: &verbose,
	},
}
