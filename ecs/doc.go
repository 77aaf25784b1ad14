// Package ecs provides ECS adapters for hopper's collision events.
//
// The primary adapter is [NewDonburiSink], which bridges hopper collision
// events (Collide and Overlap pairs) into a [Donburi] world as typed events.
// Subscribe to [CollisionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	hw.SetEventSink(sink)
//
// [Link] attaches a hopper entity to a Donburi entity so systems can find it
// again with [Resolve]; [Prune] drops links to destroyed entities.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
