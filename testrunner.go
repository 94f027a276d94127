package folio

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// LabeledSnapshot is a page snapshot captured by a "snapshot" step.
type LabeledSnapshot struct {
	Label  string
	Frame  int
	Scroll float64
	Scenes []SceneSnapshot
}

// TestRunner sequences injected viewport events and snapshots across frames
// for automated testing. Attach to a Page via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	frame     int
	done      bool
	snapshots []LabeledSnapshot
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Page via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "scroll", "scrollBy", "sweep", "pointer", "leave", "resize", "wait", "snapshot", "screenshot", "anchor":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the page. The runner's step method
// is called from Page.Update before injected input is processed.
func (p *Page) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Snapshots returns every snapshot captured so far.
func (r *TestRunner) Snapshots() []LabeledSnapshot {
	return r.snapshots
}

// Err returns the first error a step produced, such as an unknown anchor.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Page.Update.
func (r *TestRunner) step(p *Page) {
	r.frame++
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(p.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "snapshot":
		r.snapshots = append(r.snapshots, LabeledSnapshot{
			Label:  st.Label,
			Frame:  r.frame,
			Scroll: p.viewport.ScrollY(),
			Scenes: p.Snapshot(),
		})
	case "screenshot":
		p.Screenshot(st.Label)
	case "scroll":
		p.InjectScroll(st.Y)
	case "scrollBy":
		p.InjectScrollBy(st.Y)
	case "sweep":
		p.InjectScrollSweep(st.FromY, st.ToY, st.Frames)
	case "pointer":
		p.InjectPointer(st.X, st.Y)
	case "leave":
		p.InjectPointerLeave()
	case "resize":
		p.InjectResize(st.Width, st.Height)
	case "anchor":
		if err := p.ScrollToAnchor(st.Label, time.Duration(st.Ms)*time.Millisecond, nil); err != nil && r.err == nil {
			r.err = err
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
