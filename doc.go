// Package backdrop renders the animated 3D background of the graph-learning
// web client with [Ebitengine].
//
// A [Renderer] attaches to a named container on a [Host], builds a fixed
// scene and animates it once per host frame:
//
//   - a field of 700 points scattered through a 100-unit cube
//   - a translucent wireframe icosahedron of radius 15
//   - a group of ten wireframe cubes, each spinning on its own
//
// The camera sits 30 units out on +Z and eases toward a target derived from
// the pointer's offset from the viewport center, always looking at the
// origin. Exponential-squared fog fades distant geometry into the
// background color.
//
// # Quick start
//
//	host := backdrop.NewWindowHost(1280, 720, "canvas-container")
//	r := backdrop.New(host, "canvas-container",
//		backdrop.WithLogger(logger),
//	)
//	defer r.Dispose()
//	if err := backdrop.Run(host, backdrop.RunConfig{Title: "GraphLearn"}); err != nil {
//		log.Fatal(err)
//	}
//
// If the container does not exist, [New] returns an inert renderer and
// nothing is drawn.
//
// # Hosts
//
// [WindowHost] drives frames from the Ebitengine game loop and feeds it the
// cursor position and window size. [HeadlessHost] has no window; frames,
// pointer moves and resizes are driven by calling its methods, which makes
// the renderer testable without a GPU. [RunHeadless] ticks a HeadlessHost at
// a fixed rate until a context is cancelled.
//
// # Animation
//
// The particle field, shell and node group rotate as a function of elapsed
// time read from a [Clock], so their pose does not depend on frame rate.
// Each node's own spin advances by a fixed step per frame. Use [WithClock]
// and [WithSeed] for deterministic output.
//
// # Automation
//
// [LoadScript] parses a YAML step list of pointer moves, resizes, waits and
// screenshots that drives a renderer frame by frame. See also
// [Renderer.InjectPointerMove] and [Renderer.Screenshot].
//
// [Ebitengine]: https://ebitengine.org
package backdrop
