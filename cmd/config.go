package cmd

import "time"

const (
	DEF_TIMER_COUNT  = 3
	DEF_BASE_PERIOD  = time.Second
	DEF_REFRESH_RATE = 50 * time.Millisecond
)

const DESCRIPTION = `
Timerq is an in-process timer service: schedule a task to run
once or repeatedly after a delay, and a single background worker
fires due timers in deadline order, handing each task to a run
loop owned by the host.
`

const (
	DemoDescription = `The demo command schedules a handful of one-shot timers
with staggered deadlines and renders a live countdown bar
for each until it fires. A recurring refresh timer drives
the bar updates, so one run exercises one-shot scheduling,
intervals and cancellation together.

Example:
        timerq demo
        timerq demo -n 5 -p 800ms

`
)
