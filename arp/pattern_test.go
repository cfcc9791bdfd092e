package arp

import "testing"

func TestScaleNote(t *testing.T) {
	cases := []struct {
		degree uint8
		scale  Scale
		want   uint8
		ok     bool
	}{
		{1, ScaleMajor, 2, true},
		{2, ScaleMajor, 4, true},
		{3, ScaleMajor, 5, true},
		{4, ScaleMajor, 7, true},
		{5, ScaleMajor, 9, true},
		{6, ScaleMajor, 11, true},
		{1, ScaleMinor, 2, true},
		{2, ScaleMinor, 3, true},
		{3, ScaleMinor, 5, true},
		{4, ScaleMinor, 7, true},
		{5, ScaleMinor, 8, true},
		{6, ScaleMinor, 10, true},

		// 0 is silence; 7 has no table entry; both are "no note"
		{0, ScaleMajor, 0, false},
		{0, ScaleMinor, 0, false},
		{7, ScaleMajor, 0, false},
		{7, ScaleMinor, 0, false},
		{200, ScaleMajor, 0, false},
	}
	for _, c := range cases {
		got, ok := ScaleNote(c.degree, c.scale)
		if got != c.want || ok != c.ok {
			t.Errorf("ScaleNote(%d, %v) = (%d, %v), want (%d, %v)",
				c.degree, c.scale, got, ok, c.want, c.ok)
		}
	}
}

func TestTrackerWrapsIndependently(t *testing.T) {
	tr := NewTracker()

	// the index wraps at 32, the LED note wraps within its 8-pad row
	for i := 0; i < PatternLen; i++ {
		tr.Advance()
		tr.MoveRight()
	}
	if tr.Index != 0 {
		t.Errorf("Index = %d after %d steps, want 0", tr.Index, PatternLen)
	}
	if tr.Note != 112 {
		t.Errorf("Note = %d after %d steps, want 112", tr.Note, PatternLen)
	}

	tr.Advance()
	tr.MoveRight()
	if tr.Index != 1 || tr.Note != 113 {
		t.Errorf("after one more step: Index=%d Note=%d, want 1, 113", tr.Index, tr.Note)
	}
}

func TestTrackerInPage(t *testing.T) {
	tr := NewTracker()
	tr.Index = 9

	for page := uint8(0); page < 4; page++ {
		want := page == 1
		if got := tr.InPage(page); got != want {
			t.Errorf("InPage(%d) with index 9 = %v, want %v", page, got, want)
		}
	}

	tr.Index = 31
	if !tr.InPage(3) {
		t.Errorf("index 31 should be visible on page 3")
	}
	if tr.InPage(0) {
		t.Errorf("index 31 should not be visible on page 0")
	}
}
