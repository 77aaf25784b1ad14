package ecs

import (
	"github.com/phanxgames/hopper"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CollisionEventType is the Donburi event type for hopper collision events.
// Subscribe to this in your ECS systems to receive Collide and Overlap pairs.
var CollisionEventType = events.NewEventType[hopper.CollisionEvent]()

// EntityRef links a Donburi entity to a hopper entity by handle.
type EntityRef struct {
	Handle hopper.Handle
}

// EntityComponent stores an EntityRef.
var EntityComponent = donburi.NewComponentType[EntityRef]()

var linkedQuery = donburi.NewQuery(filter.Contains(EntityComponent))

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Collision events are published to CollisionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) hopper.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) OnCollision(event hopper.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}

// Link creates a Donburi entity that refers to e.
func Link(world donburi.World, e *hopper.Entity) donburi.Entity {
	ent := world.Create(EntityComponent)
	EntityComponent.SetValue(world.Entry(ent), EntityRef{Handle: e.Handle()})
	return ent
}

// Resolve returns the hopper entity an entry refers to, or nil when the entry
// has no EntityComponent or the entity was destroyed.
func Resolve(hw *hopper.World, entry *donburi.Entry) *hopper.Entity {
	if entry == nil || !entry.HasComponent(EntityComponent) {
		return nil
	}
	return hw.Entity(EntityComponent.Get(entry).Handle)
}

// Prune removes every linked Donburi entity whose hopper entity is gone and
// returns how many were removed.
func Prune(world donburi.World, hw *hopper.World) int {
	var stale []donburi.Entity
	linkedQuery.Each(world, func(entry *donburi.Entry) {
		if hw.Entity(EntityComponent.Get(entry).Handle) == nil {
			stale = append(stale, entry.Entity())
		}
	})
	for _, ent := range stale {
		world.Remove(ent)
	}
	return len(stale)
}
