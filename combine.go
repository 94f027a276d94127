package folio

import "math"

// Reducer folds two signal values into one.
type Reducer func(a, b float64) float64

// Reducers.
var (
	ReduceMin     Reducer = math.Min
	ReduceMax     Reducer = math.Max
	ReduceProduct Reducer = func(a, b float64) float64 { return a * b }
)

// Combined reduces several signals pointwise. It holds no state; every read
// recomputes from its inputs.
type Combined struct {
	inputs []Signal
	reduce Reducer
}

// Combine builds a combined signal. At least one input is required.
func Combine(reduce Reducer, first Signal, rest ...Signal) *Combined {
	inputs := make([]Signal, 0, 1+len(rest))
	inputs = append(inputs, first)
	inputs = append(inputs, rest...)
	return &Combined{inputs: inputs, reduce: reduce}
}

// MinOf combines signals with minimum reduction.
func MinOf(first Signal, rest ...Signal) *Combined {
	return Combine(ReduceMin, first, rest...)
}

// Value reduces the current input values left to right.
func (c *Combined) Value() float64 {
	v := c.inputs[0].Value()
	for _, in := range c.inputs[1:] {
		v = c.reduce(v, in.Value())
	}
	return v
}

// Envelope is the fade-in / hold / fade-out curve of a section: the minimum
// of an entrance and an exit curve over one progress signal. A nil curve is
// treated as constant 1, which leaves the other curve unchanged.
//
// The envelope only holds at full value when the entrance domain ends before
// the exit domain begins; overlapping domains produce a mid-section dip.
func Envelope(progress Signal, enter, exit *Table) *Combined {
	var in, out Signal = Const(1), Const(1)
	if enter != nil {
		in = Map(progress, enter)
	}
	if exit != nil {
		out = Map(progress, exit)
	}
	return MinOf(in, out)
}
