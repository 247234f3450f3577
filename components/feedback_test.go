package components

import (
	"testing"

	cfg "github.com/automoto/proxyfeedback/config"
)

func TestWinnerHighestPriorityLatestTie(t *testing.T) {
	var q FeedbackQueueData
	a := &FeedbackRequest{Control: cfg.Trigger, Priority: 1}
	b := &FeedbackRequest{Control: cfg.Trigger, Priority: 3}
	c := &FeedbackRequest{Control: cfg.Trigger, Priority: 3}
	d := &FeedbackRequest{Control: cfg.Grip, Priority: 9}

	steps := []struct {
		name   string
		apply  func()
		winner *FeedbackRequest
	}{
		{"empty", func() {}, nil},
		{"add a", func() { q.Add(a, true) }, a},
		{"add b", func() { q.Add(b, true) }, b},
		{"add c ties b", func() { q.Add(c, true) }, c},
		{"other control", func() { q.Add(d, true) }, c},
		{"remove c", func() { q.Remove(c) }, b},
		{"remove b", func() { q.Remove(b) }, a},
		{"re-add c", func() { q.Add(c, true) }, c},
		{"remove a", func() { q.Remove(a) }, c},
		{"remove c again", func() { q.Remove(c) }, nil},
	}

	for _, s := range steps {
		s.apply()
		if got := q.Winner(cfg.Trigger); got != s.winner {
			t.Fatalf("%s: unexpected winner %+v, want %+v", s.name, got, s.winner)
		}
	}
}

func TestShakeLockHeldOnce(t *testing.T) {
	var q FeedbackQueueData
	first := &FeedbackRequest{ShowBody: true}
	second := &FeedbackRequest{ShowBody: true}

	q.Add(first, true)
	q.Tick(1, nil)
	q.Add(second, true)

	if q.ShakeHolder != first {
		t.Fatal("expected the first shake request to keep the lock")
	}
	if got := first.Remaining(); got != cfg.Feedback.ShakeDuration-1 {
		t.Errorf("expected holder timer untouched at %v, got %v", cfg.Feedback.ShakeDuration-1, got)
	}
	if !q.Contains(second) {
		t.Error("expected the second request to stay queued for normal feedback")
	}

	q.Remove(first)
	if q.ShakeLocked() {
		t.Error("expected removing the holder to release the lock")
	}
}

func TestLifespans(t *testing.T) {
	var q FeedbackQueueData
	normal := &FeedbackRequest{Control: cfg.Trigger}
	long := &FeedbackRequest{Control: cfg.Grip, Duration: 16}
	shake := &FeedbackRequest{ShowBody: true}

	q.Add(normal, true)
	q.Add(long, true)
	q.Add(shake, true)

	if got := normal.Remaining(); got != 0.625 {
		t.Errorf("expected default lifespan 0.625, got %v", got)
	}
	if got := long.Remaining(); got != 2 {
		t.Errorf("expected scaled lifespan 2, got %v", got)
	}
	if got := shake.Remaining(); got != 5 {
		t.Errorf("expected shake lifespan 5, got %v", got)
	}

	expired := q.Tick(1, nil)
	if len(expired) != 1 || expired[0] != normal {
		t.Fatalf("expected only the normal request to expire, got %v", expired)
	}
	if normal.Visible() {
		t.Error("expected expired request to be invisible")
	}
	if q.Contains(normal) {
		t.Error("expected expired request dropped from the queue")
	}
	if got := q.Winner(cfg.Trigger); got != nil {
		t.Errorf("expected no trigger winner after expiry, got %+v", got)
	}
	if !q.AnyVisible(cfg.Grip) || q.AnyVisible(cfg.Trigger) {
		t.Error("unexpected per-control visibility after expiry")
	}

	expired = q.Tick(1, expired[:0])
	if len(expired) != 1 || expired[0] != long {
		t.Fatalf("expected the long request to expire, got %v", expired)
	}

	expired = q.Tick(3.5, expired[:0])
	if len(expired) != 1 || expired[0] != shake {
		t.Fatalf("expected the shake request to expire, got %v", expired)
	}
	if q.ShakeLocked() {
		t.Error("expected expiry to release the shake lock")
	}
	if len(q.Requests) != 0 {
		t.Errorf("expected empty queue, got %d requests", len(q.Requests))
	}
}

func TestInactiveQueueHasNoTimers(t *testing.T) {
	var q FeedbackQueueData
	r := &FeedbackRequest{Control: cfg.Trigger}
	q.Add(r, false)

	if got := q.Tick(100, nil); len(got) != 0 {
		t.Fatalf("expected no expiry while inactive, got %v", got)
	}
	if !r.Visible() {
		t.Error("expected request to stay visible")
	}

	q.StartTimers()
	if got := q.Tick(1, nil); len(got) != 1 {
		t.Errorf("expected expiry once timers started, got %v", got)
	}
}

func TestByCaller(t *testing.T) {
	var q FeedbackQueueData
	menu, tool := "menu", "tool"
	a := &FeedbackRequest{Control: cfg.Trigger, Caller: menu}
	b := &FeedbackRequest{Control: cfg.Grip, Caller: tool}
	c := &FeedbackRequest{Control: cfg.Menu, Caller: menu}
	q.Add(a, true)
	q.Add(b, true)
	q.Add(c, true)

	got := q.ByCaller(menu, nil)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("expected [a c] in queue order, got %v", got)
	}
}

func TestByCallerUncomparable(t *testing.T) {
	var q FeedbackQueueData
	q.Add(&FeedbackRequest{Control: cfg.Trigger, Caller: [1]string{"x"}}, true)

	if got := q.ByCaller([]int{1}, nil); len(got) != 0 {
		t.Errorf("expected no match for a slice caller, got %v", got)
	}
	if got := q.ByCaller([1]string{"x"}, nil); len(got) != 1 {
		t.Errorf("expected array callers to compare by value, got %v", got)
	}
}

func TestRemoveUnknownRequest(t *testing.T) {
	var q FeedbackQueueData
	q.Add(&FeedbackRequest{}, true)
	if q.Remove(&FeedbackRequest{}) {
		t.Error("expected removing an unqueued request to report false")
	}
	if len(q.Requests) != 1 {
		t.Errorf("expected queue untouched, got %d requests", len(q.Requests))
	}
}
