// bounce spawns balls and crates that fall under gravity, bounce off the
// world edges, and flash when they overlap. Run with -profile cpu or
// -profile mem to write a pprof file to the working directory.
package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/phanxgames/hopper"
	"github.com/pkg/profile"
)

const (
	screenW    = 1280
	screenH    = 720
	shapeCount = 300
	gravity    = 600
	flashTime  = 0.15
)

func main() {
	prof := flag.String("profile", "", "write a cpu or mem profile")
	headless := flag.Int("headless", 0, "simulate this many steps without a window")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatalf("unknown profile mode %q", *prof)
	}

	var shapes *hopper.Group
	flash := map[hopper.Handle]float64{}

	game := hopper.NewGame(hopper.Config{
		Title:   "hopper bounce",
		Width:   screenW,
		Height:  screenH,
		Debug:   *debug,
		ShowFPS: true,
	}, hopper.Scene{
		Create: func(g *hopper.Game) {
			shapes = g.World().NewGroup("shapes")
			shapes.PhysicsEnabled = true
			for range shapeCount {
				size := float64(hopper.IntegerInRange(12, 40))
				e := shapes.Create(
					rand.Float64()*(screenW-size),
					rand.Float64()*(screenH/2),
					"", 0, true)
				e.SetSize(size, size)
				b := e.Body
				if rand.IntN(2) == 0 {
					b.SetCircle()
				}
				b.Velocity.SetTo(rand.Float64()*400-200, rand.Float64()*200-100)
				b.Gravity.SetTo(0, gravity)
				b.Bounce.SetTo(0.9, 0.8)
				b.CollideWorldBounds = true
			}
		},
		Update: func(g *hopper.Game) {
			dt := g.World().Time().Delta()
			for h, left := range flash {
				left -= dt
				e := g.World().Entity(h)
				if e == nil || left <= 0 {
					if e != nil {
						e.Tint = hopper.ColorWhite
					}
					delete(flash, h)
					continue
				}
				flash[h] = left
			}
			hopper.Overlap(shapes, shapes, func(a, b *hopper.Entity) {
				for _, e := range [2]*hopper.Entity{a, b} {
					e.Tint = hopper.Color{R: 1, G: 0.3, B: 0.3, A: 1}
					flash[e.Handle()] = flashTime
				}
			})
		},
	})

	if *headless > 0 {
		for range *headless {
			game.Tick(game.Loop().Step)
		}
		log.Printf("simulated %d steps, %d shapes, %d dropped", *headless, shapes.CountActive(), game.Loop().Dropped())
		return
	}

	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
