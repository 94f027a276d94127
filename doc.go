// Package folio is a scroll-linked motion engine for single-page portfolio
// sites, with an [Ebitengine] host for running pages in a window.
//
// A page is a stack of full-height sections. As the viewport scrolls, each
// section's scroll progress is mapped through entrance and exit curves,
// combined, smoothed by springs and exposed as an opacity and scale.
//
// # Quick start
//
// The simplest way to get started is a YAML page description and [Run]:
//
//	cfg, err := folio.LoadConfig("page.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	page, err := cfg.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	folio.Run(page, folio.RunConfig{Title: "Portfolio"})
//
// Pages can also be driven headless. Feed input to the [Viewport] or queue
// it with [Page.InjectScroll], then advance time with [Page.Update]:
//
//	page := folio.NewPage(1280, 800)
//	scene, _ := folio.NewScene(folio.SceneConfig{
//		ID:      "about",
//		Element: folio.NewBlock(folio.Rect{Y: 800, Width: 1280, Height: 800}),
//	})
//	page.AddScene(scene)
//	page.InjectScroll(600)
//	page.Update(time.Second / 60)
//	style := scene.Style()
//
// # Pipeline
//
// Every stage is a [Signal] that is pulled on read:
//
//   - [ProgressMapper] turns the scroll position into a clamped [0, 1]
//     progress for one element, given a [ScrollOffset].
//   - [Table] interpolates piecewise-linearly between breakpoints; [Map]
//     applies one to a signal.
//   - [Combined] reduces several signals; [Envelope] takes the minimum of an
//     entrance and an exit curve.
//   - [Smoother] chases a signal with a damped spring (via [harmonica]) and
//     reports when it comes to rest.
//
// Smoothers only run while settling. Each component owns at most one
// pending callback on the page's [FrameQueue] and unmounting cancels it.
//
// # Effects
//
// Besides scenes, a page can mount a [CursorFollower], [TiltCard],
// [Counter], [Reveal], [Parallax] and [ScrollFade], and scatter
// decorative [FloatingShape] values with a seeded generator. All of them
// read the viewport's reduced-motion preference at mount and jump straight
// to their final state when it is set. Time-based animations use [gween].
//
// The page also keeps a [ScrollSpy] for navigation: [Page.ActiveSection]
// names the section under the top bar and [Page.Scrolled] reports whether
// the page has left the top.
//
// Scene visibility changes can be forwarded to a [Donburi] world through
// the adapter in folio/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
// [Donburi]: https://github.com/yohamta/donburi
package folio
