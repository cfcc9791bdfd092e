package arp

import (
	"fmt"
	"math"
	"time"
)

// Msg tags a scheduled action for the control loop
type Msg uint8

const (
	MsgCheckInputs Msg = iota
	MsgUpdateState
	MsgFlushNotes
	MsgQuit
)

func (m Msg) String() string {
	switch m {
	case MsgCheckInputs:
		return "CheckInputs"
	case MsgUpdateState:
		return "UpdateState"
	case MsgFlushNotes:
		return "FlushNotes"
	case MsgQuit:
		return "Quit"
	}
	return "Unknown"
}

// job counts ticks toward its period and fires its msg on arrival
type job struct {
	elapsed int
	period  int
	msg     Msg
}

// Scheduler converts a BPM target into a fixed tick duration and runs
// periodic jobs against it. Tick sleeps off whatever remains of the
// interval after the work done that tick, so the loop stays in lockstep
// with the target rate. If a tick overruns its interval no sleep
// happens and the clock silently falls behind; it never fires multiple
// logical ticks to catch up.
type Scheduler struct {
	tickDuration time.Duration
	lastTime     time.Time
	jobs         []job
	queue        []Msg
}

// NewScheduler returns a scheduler with a zero tick duration; call
// SetRate before ticking.
func NewScheduler() *Scheduler {
	return &Scheduler{
		lastTime: time.Now(),
		jobs:     make([]job, 0, 100),
		queue:    make([]Msg, 0, 100),
	}
}

// SetRate derives the tick duration from a BPM and a tick resolution:
// one minute in microseconds divided by bpm x ticksPerBeat, rounded
// down. Nonsensical rates are rejected here so the tick duration can
// never be zero or overflowed.
func (s *Scheduler) SetRate(bpm, ticksPerBeat int) error {
	if bpm <= 0 || ticksPerBeat <= 0 {
		return fmt.Errorf("invalid rate: bpm=%d ticksPerBeat=%d (must be positive)", bpm, ticksPerBeat)
	}
	if bpm > math.MaxInt32/ticksPerBeat {
		return fmt.Errorf("invalid rate: bpm=%d ticksPerBeat=%d (product overflows)", bpm, ticksPerBeat)
	}
	us := 60_000_000 / (bpm * ticksPerBeat)
	s.tickDuration = time.Duration(us) * time.Microsecond
	return nil
}

// Every registers a job firing msg once per period ticks. Jobs with the
// same period fire in registration order. No de-duplication.
func (s *Scheduler) Every(period int, msg Msg) {
	s.jobs = append(s.jobs, job{period: period, msg: msg})
}

// Tick advances every job by one tick, queueing the ones that reached
// their period, then sleeps out the remainder of the tick interval.
func (s *Scheduler) Tick() {
	for i := range s.jobs {
		j := &s.jobs[i]
		j.elapsed++
		if j.elapsed == j.period {
			j.elapsed = 0
			s.queue = append(s.queue, j.msg)
		}
	}

	if delta := s.tickDuration - time.Since(s.lastTime); delta > 0 {
		time.Sleep(delta)
	}
	s.lastTime = time.Now()
}

// HasDue reports whether any jobs are waiting to be consumed
func (s *Scheduler) HasDue() bool {
	return len(s.queue) > 0
}

// Drain feeds every due msg to fn in order, then clears the queue.
// The queue is cleared even when fn fails partway: the remaining
// messages belong to a cycle that is being aborted.
func (s *Scheduler) Drain(fn func(Msg) error) error {
	defer func() {
		s.queue = s.queue[:0]
	}()
	for _, m := range s.queue {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}
