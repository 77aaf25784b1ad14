// Package hopper is a single-threaded 2D scene and arcade-physics core for
// [Ebitengine].
//
// Hopper provides a scene graph of rectangle and circle entities, active and
// inactive partitions for object pooling, a camera with dead-zone following
// and culling, per-entity physics integration, collision detection and a
// simulated clock with timers.
//
// # Quick start
//
// The simplest way to get started is [NewGame], which wires a [World] to an
// [EbitenSurface] and a fixed-step [Loop]:
//
//	game := hopper.NewGame(hopper.Config{Title: "Bounce"}, hopper.Scene{
//		Create: func(g *hopper.Game) {
//			ball := g.World().NewSprite(100, 100, "", 0)
//			body := ball.EnableBody()
//			body.Velocity.SetTo(200, 150)
//			body.Bounce.SetTo(1, 1)
//			body.CollideWorldBounds = true
//		},
//	})
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// For headless simulations and tests, drive a [World] directly with
// [World.Update] and [World.Render], or call [Game.Tick] with elapsed
// milliseconds.
//
// # Scene graph
//
// A [World] holds [Entity] and [Group] nodes in one flat list. Groups split
// their entities into an active and an inactive partition: [Entity.Kill]
// moves an entity to the inactive side and [Entity.Revive] brings it back.
// [Group.GetInactive] hands out pooled entities.
//
// Nodes refer to each other through generational [Handle] values rather
// than pointers. After [Entity.Destroy] every handle to the entity resolves
// to nil, so a camera following a destroyed entity simply stops.
//
// # Physics
//
// [Entity.EnableBody] attaches a [Body]. Each update integrates angular
// velocity, acceleration, gravity, drag and the velocity cap, moves the
// entity and optionally clamps it to the world bounds with bounce.
//
// [Collide] and [Overlap] find intersecting pairs between entities and
// groups and report each pair once. Detection is shape-aware (rectangles
// and circles) but does not separate bodies.
//
// # Presentation
//
// The core never draws. It pushes changed state to a [Surface]; the bundled
// [EbitenSurface] retains that state and paints it in Draw. Entities outside
// the camera are hidden and skip style writes.
//
// # Debug mode
//
// [World.SetDebugMode] turns invalid references into panics prefixed with
// "hopper debug:", re-raises panics recovered from node updates, and prints
// per-frame stats to stderr.
//
// [Ebitengine]: https://ebitengine.org
package hopper
