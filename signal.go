package folio

// Signal is a continuously readable scalar. Stages of the motion pipeline are
// signals over other signals and recompute when read; only a Smoother holds
// state of its own.
type Signal interface {
	Value() float64
}

// SignalFunc adapts a function to Signal.
type SignalFunc func() float64

// Value calls f.
func (f SignalFunc) Value() float64 { return f() }

// Const is a signal that never changes.
type Const float64

// Value returns c.
func (c Const) Value() float64 { return float64(c) }

// Mapped is a signal passed through an interpolation table.
type Mapped struct {
	src   Signal
	table *Table
}

// Map derives a signal by interpolating src through table.
func Map(src Signal, table *Table) *Mapped {
	return &Mapped{src: src, table: table}
}

// Value interpolates the current source value.
func (m *Mapped) Value() float64 {
	return m.table.At(m.src.Value())
}

// Table returns the table the signal is mapped through.
func (m *Mapped) Table() *Table { return m.table }
