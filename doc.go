// Package sprout grows animated structures around page elements: grid-snapped
// circuit traces with travelling pulses, organic roots and vines with glowing
// leaves, and skyline buildings rising from an element's edges.
//
// A [Controller] owns one drawing [Surface] and a set of growth sessions, one
// [Tree] per triggering element. Starting a session seeds the element's
// perimeter, grows the whole tree at once against an [ObstacleIndex] built
// from the surrounding elements, and claims lattice points in the shared
// [Occupancy] so concurrent trees never cross. Progress is then revealed a
// little every tick, children only after their parent has fully drawn.
//
// # Quick start
//
//	surface := sprout.NewImageSurface(1280, 800)
//	ctrl, err := sprout.NewController(surface, page, page, sprout.WithSeed(1))
//	if err != nil {
//		return err
//	}
//	v, _ := sprout.Preset("circuit")
//	ctrl.Start(card, &v)
//	for range 60 {
//		ctrl.Update()
//		ctrl.Draw()
//	}
//
// The page layer supplies element geometry through [Geometry] and the
// candidate obstacles through [ObstacleEnumerator]. Pointer input becomes
// enter, leave and touch events through a [TriggerTracker].
//
// # Variants
//
// Growth policy lives in a [Variant]: grid size, candidate angles and their
// order, fork chances, depth limit, seed density and render constants.
// [Presets] returns the built-in circuit, circuit-menu, trace, rigid, organic
// and skyline variants. [Config] overrides them from YAML.
//
// # Surfaces
//
// [EbitenSurface] draws into an ebiten image for the window. [ImageSurface]
// rasterises into an in-memory RGBA image, which is what scripted sessions
// ([ScriptRunner]) and [WriteSnapshot] use without a GPU.
package sprout

// Version is the sprout release.
const Version = "0.3.0"
