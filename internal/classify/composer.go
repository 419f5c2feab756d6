package classify

import (
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

// Composer recomputes the status whenever the input changes and reports each
// new snapshot to a callback. It is meant to be owned by one goroutine.
type Composer struct {
	tables   *reference.Tables
	onChange func(model.NutritionalStatus)

	status  model.NutritionalStatus
	input   model.Input
	started bool
}

// NewComposer builds a Composer. initial seeds Status until the first
// recomputation; onChange may be nil.
func NewComposer(tables *reference.Tables, initial *model.NutritionalStatus, onChange func(model.NutritionalStatus)) *Composer {
	c := &Composer{tables: tables, onChange: onChange}
	if initial != nil {
		c.status = *initial
	}
	return c
}

// Status returns the last emitted snapshot, or the seed before the first one.
func (c *Composer) Status() model.NutritionalStatus {
	return c.status
}

// Update recomputes when in differs from the previous input, or on the first
// call, and returns the current snapshot.
func (c *Composer) Update(in model.Input) model.NutritionalStatus {
	if c.started && c.input.Equal(in) {
		return c.status
	}
	c.input = copyInput(in)
	return c.Recompute()
}

// Recompute classifies the last input again and emits the result.
func (c *Composer) Recompute() model.NutritionalStatus {
	c.started = true
	c.status = Classify(c.input, c.tables)
	if c.onChange != nil {
		c.onChange(c.status)
	}
	return c.status
}

func copyInput(in model.Input) model.Input {
	out := in
	if in.Weight != nil {
		out.Weight = model.Float(*in.Weight)
	}
	if in.Height != nil {
		out.Height = model.Float(*in.Height)
	}
	if in.MUAC != nil {
		out.MUAC = model.Float(*in.MUAC)
	}
	return out
}
