package ecs

import (
	"testing"

	"github.com/phanxgames/hopper"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_ReceivesCollisions(t *testing.T) {
	world := donburi.NewWorld()
	hw := hopper.NewWorld(800, 600)
	hw.SetEventSink(NewDonburiSink(world))

	var received []hopper.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e hopper.CollisionEvent) {
		received = append(received, e)
	})

	a := hw.NewSprite(0, 0, "", 0)
	a.Name = "a"
	b := hw.NewSprite(10, 10, "", 0)
	b.Name = "b"

	if n := hopper.Collide(a, b, nil); n != 1 {
		t.Fatalf("Collide = %d, want 1", n)
	}
	if n := hopper.Overlap(a, b, nil); n != 1 {
		t.Fatalf("Overlap = %d, want 1", n)
	}

	// Events are queued until processed.
	CollisionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Kind != hopper.KindCollide || e0.A != a.Handle() || e0.B != b.Handle() {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.NameA != "a" || e0.NameB != "b" {
		t.Errorf("event 0 names: %q, %q", e0.NameA, e0.NameB)
	}
	if received[1].Kind != hopper.KindOverlap {
		t.Errorf("event 1 kind = %v, want overlap", received[1].Kind)
	}
}

func TestDonburiSink_NoEventWithoutContact(t *testing.T) {
	world := donburi.NewWorld()
	hw := hopper.NewWorld(800, 600)
	hw.SetEventSink(NewDonburiSink(world))

	count := 0
	CollisionEventType.Subscribe(world, func(w donburi.World, e hopper.CollisionEvent) {
		count++
	})

	a := hw.NewSprite(0, 0, "", 0)
	b := hw.NewSprite(500, 500, "", 0)
	hopper.Collide(a, b, nil)
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("expected no events, got %d", count)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	CollisionEventType.Subscribe(world, func(w donburi.World, e hopper.CollisionEvent) {
		count1++
	})
	CollisionEventType.Subscribe(world, func(w donburi.World, e hopper.CollisionEvent) {
		count2++
	})

	sink.OnCollision(hopper.CollisionEvent{Kind: hopper.KindOverlap})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestLinkResolvePrune(t *testing.T) {
	world := donburi.NewWorld()
	hw := hopper.NewWorld(800, 600)

	keep := hw.NewSprite(0, 0, "", 0)
	drop := hw.NewSprite(50, 0, "", 0)
	keepEnt := Link(world, keep)
	dropEnt := Link(world, drop)

	if got := Resolve(hw, world.Entry(keepEnt)); got != keep {
		t.Fatalf("Resolve(keep) = %v, want keep", got)
	}

	drop.Destroy(false)
	if got := Resolve(hw, world.Entry(dropEnt)); got != nil {
		t.Errorf("Resolve after destroy = %v, want nil", got)
	}

	if n := Prune(world, hw); n != 1 {
		t.Errorf("Prune = %d, want 1", n)
	}
	if world.Valid(dropEnt) {
		t.Error("pruned entity still valid")
	}
	if !world.Valid(keepEnt) {
		t.Error("live link was pruned")
	}
}
