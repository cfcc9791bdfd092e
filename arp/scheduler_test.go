package arp

import (
	"errors"
	"math"
	"testing"
	"time"
)

// drainAll collects every due msg, emptying the queue
func drainAll(s *Scheduler) []Msg {
	var got []Msg
	s.Drain(func(m Msg) error {
		got = append(got, m)
		return nil
	})
	return got
}

func TestSetRate(t *testing.T) {
	s := NewScheduler()
	if err := s.SetRate(120, 64); err != nil {
		t.Fatalf("SetRate(120, 64) = %v", err)
	}
	// 60,000,000us / (120*64), rounded down
	if want := 7812 * time.Microsecond; s.tickDuration != want {
		t.Errorf("tickDuration = %v, want %v", s.tickDuration, want)
	}
}

func TestSetRateRejectsBadRates(t *testing.T) {
	cases := []struct {
		bpm, ticks int
	}{
		{0, 64},
		{120, 0},
		{-120, 64},
		{120, -64},
		{math.MaxInt32, 2},
	}
	for _, c := range cases {
		s := NewScheduler()
		if err := s.SetRate(c.bpm, c.ticks); err == nil {
			t.Errorf("SetRate(%d, %d) accepted, want error", c.bpm, c.ticks)
		}
		if s.tickDuration != 0 {
			t.Errorf("SetRate(%d, %d) left tickDuration = %v", c.bpm, c.ticks, s.tickDuration)
		}
	}
}

func TestJobFiresEveryPeriod(t *testing.T) {
	s := NewScheduler() // zero tick duration: ticks return immediately
	s.Every(4, MsgCheckInputs)

	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < 3; i++ {
			s.Tick()
			if s.HasDue() {
				t.Fatalf("cycle %d: due after %d ticks, period is 4", cycle, i+1)
			}
		}
		s.Tick()
		got := drainAll(s)
		if len(got) != 1 || got[0] != MsgCheckInputs {
			t.Fatalf("cycle %d: drained %v, want [CheckInputs]", cycle, got)
		}
	}
}

func TestSamePeriodJobsFireInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	s.Every(2, MsgUpdateState)
	s.Every(2, MsgFlushNotes)

	for cycle := 0; cycle < 4; cycle++ {
		s.Tick()
		s.Tick()
		got := drainAll(s)
		if len(got) != 2 || got[0] != MsgUpdateState || got[1] != MsgFlushNotes {
			t.Fatalf("cycle %d: drained %v, want [UpdateState FlushNotes]", cycle, got)
		}
	}
}

func TestMixedPeriods(t *testing.T) {
	s := NewScheduler()
	s.Every(4, MsgCheckInputs)
	s.Every(32, MsgUpdateState)
	s.Every(32, MsgFlushNotes)

	var fired []Msg
	for i := 0; i < 32; i++ {
		s.Tick()
		fired = append(fired, drainAll(s)...)
	}

	want := []Msg{
		MsgCheckInputs, MsgCheckInputs, MsgCheckInputs, MsgCheckInputs,
		MsgCheckInputs, MsgCheckInputs, MsgCheckInputs,
		MsgCheckInputs, MsgUpdateState, MsgFlushNotes,
	}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired %v, want %v", fired, want)
		}
	}
}

func TestDrainStopsOnErrorButClears(t *testing.T) {
	s := NewScheduler()
	s.Every(1, MsgCheckInputs)
	s.Every(1, MsgUpdateState)
	s.Tick()

	boom := errors.New("boom")
	calls := 0
	err := s.Drain(func(m Msg) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Drain error = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times after error, want 1", calls)
	}
	if s.HasDue() {
		t.Errorf("queue not cleared after failed drain")
	}
}

func TestTickPacing(t *testing.T) {
	s := NewScheduler()
	if err := s.SetRate(2400, 5); err != nil { // 5ms ticks
		t.Fatal(err)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	// each tick sleeps out the remainder of its 5ms interval
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("3 ticks took %v, want >= 15ms", elapsed)
	}
}
