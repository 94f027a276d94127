package folio

import (
	"errors"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "scroll", "y": 800},
			{"action": "wait", "frames": 3},
			{"action": "sweep", "fromY": 800, "toY": 0, "frames": 10},
			{"action": "pointer", "x": 100, "y": 200}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "snapshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "scroll" || runner.steps[1].Y != 800 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].FromY != 800 || runner.steps[3].ToY != 0 || runner.steps[3].Frames != 10 {
		t.Error("step 3 mismatch")
	}
	if runner.steps[4].X != 100 || runner.steps[4].Y != 200 {
		t.Error("step 4 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"json":    `not json`,
		"empty":   `{"steps": []}`,
		"unknown": `{"steps": [{"action": "click"}]}`,
	}
	for name, data := range tests {
		if _, err := LoadTestScript([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func runScript(t *testing.T, p *Page, script string) *TestRunner {
	t.Helper()
	runner, err := LoadTestScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	p.SetTestRunner(runner)
	for i := 0; i < 100 && !runner.Done(); i++ {
		if err := p.Update(frame); err != nil {
			t.Fatal(err)
		}
	}
	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	return runner
}

func TestRunnerSnapshots(t *testing.T) {
	p := newTestPage(t, true, nil)
	runner := runScript(t, p, `{"steps": [
		{"action": "scroll", "y": 800},
		{"action": "snapshot", "label": "about"},
		{"action": "anchor", "label": "contact"},
		{"action": "snapshot", "label": "end"}
	]}`)
	snaps := runner.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d", len(snaps))
	}
	if snaps[0].Label != "about" || snaps[0].Scroll != 800 {
		t.Errorf("snapshot 0 = %+v", snaps[0])
	}
	if about := snaps[0].Scenes[1]; about.ID != "about" || about.Progress != 0.5 {
		t.Errorf("about = %+v", about)
	}
	if snaps[1].Scroll != 1600 || snaps[1].Frame <= snaps[0].Frame {
		t.Errorf("snapshot 1 = %+v", snaps[1])
	}
	if runner.Err() != nil {
		t.Errorf("Err = %v", runner.Err())
	}
}

func TestRunnerWaitsForInjections(t *testing.T) {
	p := newTestPage(t, true, nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "sweep", "fromY": 0, "toY": 300, "frames": 3},
		{"action": "snapshot", "label": "after"}
	]}`))
	p.SetTestRunner(runner)

	// The sweep is queued and its first event applied in the same frame.
	_ = p.Update(frame)
	if p.PendingInput() != 2 {
		t.Fatalf("pending = %d", p.PendingInput())
	}
	_ = p.Update(frame)
	_ = p.Update(frame)
	if len(runner.Snapshots()) != 0 {
		t.Fatal("snapshot taken before the sweep drained")
	}
	_ = p.Update(frame)
	snaps := runner.Snapshots()
	if len(snaps) != 1 || snaps[0].Scroll != 300 || !runner.Done() {
		t.Errorf("snapshots = %+v done %v", snaps, runner.Done())
	}
}

func TestRunnerWait(t *testing.T) {
	p := newTestPage(t, true, nil)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "snapshot"}
	]}`))
	p.SetTestRunner(runner)
	for i := 0; i < 3; i++ {
		_ = p.Update(frame)
	}
	if len(runner.Snapshots()) != 0 {
		t.Fatal("snapshot taken during wait")
	}
	_ = p.Update(frame)
	if len(runner.Snapshots()) != 1 || runner.Snapshots()[0].Frame != 4 {
		t.Errorf("snapshots = %+v", runner.Snapshots())
	}
}

func TestRunnerUnknownAnchor(t *testing.T) {
	p := newTestPage(t, true, nil)
	runner := runScript(t, p, `{"steps": [{"action": "anchor", "label": "nowhere"}]}`)
	if !errors.Is(runner.Err(), ErrUnknownScene) {
		t.Errorf("Err = %v", runner.Err())
	}
}
