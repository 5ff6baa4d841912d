package frame

import (
	"testing"
	"time"
)

func TestQueueFiresWithTimestamp(t *testing.T) {
	clock := NewMockClock(time.Unix(100, 0))
	q := NewQueue(clock)

	var got []time.Duration
	q.Request(func(ts time.Duration) { got = append(got, ts) })

	clock.Advance(16 * time.Millisecond)
	if n := q.Tick(); n != 1 {
		t.Fatalf("Tick() ran %d callbacks, want 1", n)
	}
	if len(got) != 1 || got[0] != 16*time.Millisecond {
		t.Errorf("timestamps = %v, want [16ms]", got)
	}
	if q.Tick() != 0 {
		t.Error("one-shot request fired twice")
	}
}

func TestQueueRequestDuringTickWaits(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	q := NewQueue(clock)

	frames := 0
	var loop Callback
	loop = func(time.Duration) {
		frames++
		q.Request(loop)
	}
	q.Request(loop)

	for i := 0; i < 5; i++ {
		clock.Advance(time.Millisecond)
		if n := q.Tick(); n != 1 {
			t.Fatalf("tick %d ran %d callbacks, want 1", i, n)
		}
	}
	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", q.Pending())
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue(NewMockClock(time.Unix(0, 0)))

	ran := false
	h := q.Request(func(time.Duration) { ran = true })
	q.Cancel(h)
	q.Cancel(h)
	q.Cancel(Handle(999))

	if q.Tick() != 0 || ran {
		t.Error("cancelled callback ran")
	}
}

func TestQueueCancelWithinTick(t *testing.T) {
	q := NewQueue(NewMockClock(time.Unix(0, 0)))

	var second Handle
	secondRan := false
	q.Request(func(time.Duration) { q.Cancel(second) })
	second = q.Request(func(time.Duration) { secondRan = true })

	if n := q.Tick(); n != 1 {
		t.Errorf("Tick() ran %d callbacks, want 1", n)
	}
	if secondRan {
		t.Error("callback cancelled mid-tick still ran")
	}
}

func TestQueueHandlesAreUnique(t *testing.T) {
	q := NewQueue(nil)
	seen := map[Handle]bool{}
	for i := 0; i < 100; i++ {
		h := q.Request(func(time.Duration) {})
		if h == 0 || seen[h] {
			t.Fatalf("handle %d reused or zero", h)
		}
		seen[h] = true
	}
}

func TestMockClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewMockClock(start)
	c.Advance(time.Second)
	if !c.Now().Equal(start.Add(time.Second)) {
		t.Errorf("Now() = %v", c.Now())
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Set did not apply: %v", c.Now())
	}
}
