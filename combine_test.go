package folio

import "testing"

// progressVar is a settable progress source for tests.
type progressVar struct{ v float64 }

func (p *progressVar) Value() float64 { return p.v }

func TestMinOf(t *testing.T) {
	a, b := &progressVar{0.3}, &progressVar{0.7}
	c := MinOf(a, b)
	if got := c.Value(); got != 0.3 {
		t.Errorf("Value = %v, want 0.3", got)
	}
	a.v = 0.9
	if got := c.Value(); got != 0.7 {
		t.Errorf("Value after change = %v, want 0.7", got)
	}
}

func TestCombineReducers(t *testing.T) {
	a, b, c := Const(0.5), Const(0.8), Const(0.25)
	if got := Combine(ReduceMax, a, b, c).Value(); got != 0.8 {
		t.Errorf("max = %v", got)
	}
	if got := Combine(ReduceProduct, a, b).Value(); !approxEqual(got, 0.4, epsilon) {
		t.Errorf("product = %v", got)
	}
	if got := MinOf(b).Value(); got != 0.8 {
		t.Errorf("single input = %v", got)
	}
}

func TestEnvelopeSectionCurve(t *testing.T) {
	p := &progressVar{}
	enter := MustTable([]float64{0, 0.15}, []float64{0, 1})
	exit := MustTable([]float64{0.85, 1}, []float64{1, 0})
	env := Envelope(p, enter, exit)

	tests := []struct{ p, want float64 }{
		{0, 0}, {0.075, 0.5}, {0.15, 1}, {0.5, 1}, {0.85, 1}, {0.925, 0.5}, {1, 0},
	}
	for _, tt := range tests {
		p.v = tt.p
		if got := env.Value(); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("progress %v: envelope = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEnvelopeNeverExceedsEitherCurve(t *testing.T) {
	p := &progressVar{}
	enter := MustTable([]float64{0, 0.3}, []float64{0, 1})
	exit := MustTable([]float64{0.6, 1}, []float64{1, 0})
	env := Envelope(p, enter, exit)
	for i := 0; i <= 100; i++ {
		p.v = float64(i) / 100
		v := env.Value()
		if v > enter.At(p.v)+epsilon || v > exit.At(p.v)+epsilon {
			t.Fatalf("progress %v: envelope %v exceeds a curve", p.v, v)
		}
	}
}

func TestEnvelopeNilCurves(t *testing.T) {
	p := &progressVar{0.95}
	exit := MustTable([]float64{0.85, 1}, []float64{1, 0})
	if got := Envelope(p, nil, exit).Value(); !approxEqual(got, exit.At(0.95), epsilon) {
		t.Errorf("enter-less envelope = %v", got)
	}
	p.v = 0
	enter := MustTable([]float64{0, 0.15}, []float64{0, 1})
	if got := Envelope(p, enter, nil).Value(); got != 0 {
		t.Errorf("exit-less envelope at 0 = %v", got)
	}
	if got := Envelope(p, nil, nil).Value(); got != 1 {
		t.Errorf("bare envelope = %v, want 1", got)
	}
}

func TestEnvelopeOverlapDips(t *testing.T) {
	// Overlapping domains never reach full value in the middle.
	p := &progressVar{0.5}
	enter := MustTable([]float64{0, 0.6}, []float64{0, 1})
	exit := MustTable([]float64{0.4, 1}, []float64{1, 0})
	if got := Envelope(p, enter, exit).Value(); got >= 1 {
		t.Errorf("overlap envelope at 0.5 = %v, expected a dip below 1", got)
	}
}

func TestMappedTracksSource(t *testing.T) {
	p := &progressVar{}
	m := Map(p, MustTable([]float64{0, 1}, []float64{-100, 100}))
	p.v = 0.25
	if got := m.Value(); !approxEqual(got, -50, epsilon) {
		t.Errorf("Value = %v, want -50", got)
	}
	if m.Table() == nil {
		t.Error("Table() nil")
	}
}
