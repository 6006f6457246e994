package bus

import (
	"errors"
	"testing"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got Event
	_, err := b.Subscribe("asteroid.shattered", func(e Event) error {
		got = e
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err = b.Publish(NewEvent("asteroid.shattered", "level-1", 42, 123)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got == nil {
		t.Fatal("handler not called")
	}
	if got.Tick() != 42 || got.Data() != 123 || got.Source() != "level-1" {
		t.Fatalf("unexpected event: %+v", got)
	}
}

func TestDeliveryOrderIsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := range 8 {
		_, _ = b.Subscribe("ev", func(Event) error { order = append(order, i); return nil })
	}
	_, _ = b.Subscribe("", func(Event) error { order = append(order, 100); return nil })

	_ = b.Publish(NewEvent("ev", "src", 0, nil))
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 100}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWildcardSeesEveryTypeOnce(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe("", func(Event) error { count++; return nil })
	_ = b.Publish(NewEvent("a", "src", 0, nil))
	_ = b.Publish(NewEvent("", "src", 0, nil))
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestErrorsAreJoined(t *testing.T) {
	b := New()
	first := errors.New("first")
	second := errors.New("second")
	_, _ = b.Subscribe("x", func(Event) error { return first })
	_, _ = b.Subscribe("x", func(Event) error { return nil })
	_, _ = b.Subscribe("x", func(Event) error { return second })

	err := b.Publish(NewEvent("x", "src", 0, nil))
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both errors, got %v", err)
	}

	err = b.PublishBatch(NewEvent("x", "src", 1, nil), NewEvent("y", "src", 1, nil))
	if !errors.Is(err, first) {
		t.Fatalf("batch lost the handler error: %v", err)
	}
	if m := b.Metrics(); m.Errors != 2 || m.Published != 3 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	count := 0
	sub, _ := b.Subscribe("x", func(Event) error { count++; return nil })
	_ = b.Publish(NewEvent("x", "src", 0, nil))
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	_ = sub.Cancel()
	_ = b.Publish(NewEvent("x", "src", 0, nil))

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if sub.IsActive() {
		t.Fatal("subscription still active")
	}
	if sub.ID() == "" || sub.EventType() != "x" {
		t.Fatalf("unexpected subscription: %s %s", sub.ID(), sub.EventType())
	}
	if b.Metrics().SubscribersActive != 0 {
		t.Fatalf("active subscribers: %d", b.Metrics().SubscribersActive)
	}
	if err := b.Unsubscribe(nil); err != nil {
		t.Fatalf("nil unsubscribe: %v", err)
	}
}

func TestCancelDuringDelivery(t *testing.T) {
	b := New()
	var later Subscription
	calls := 0
	_, _ = b.Subscribe("x", func(Event) error { return later.Cancel() })
	later, _ = b.Subscribe("x", func(Event) error { calls++; return nil })

	_ = b.Publish(NewEvent("x", "src", 0, nil))
	if calls != 0 {
		t.Fatal("cancelled handler was still called")
	}
}

func TestFiltersDropSilently(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe("x", func(Event) error { count++; return nil })
	reject := func(e Event) bool { return e.Tick()%2 == 0 }

	_ = b.PublishWithFilters(NewEvent("x", "src", 1, nil), reject)
	_ = b.PublishWithFilters(NewEvent("x", "src", 2, nil), reject)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if b.Metrics().DroppedByFilters != 1 {
		t.Fatalf("dropped = %d", b.Metrics().DroppedByFilters)
	}
}

func TestNilHandlerRejected(t *testing.T) {
	if _, err := New().Subscribe("x", nil); err == nil {
		t.Fatal("expected error")
	}
}
