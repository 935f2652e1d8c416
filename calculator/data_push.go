package calculator

import (
	"coax/model"
)

// BuildData 构建推送数据，电场需要先调用 DeriveField
func (c *Relaxation) BuildData() *model.Result {
	column := c.cable.CrossSectionColumn()

	c.mu.Lock()
	defer c.mu.Unlock()
	steps := make([]model.Step, len(c.steps))
	copy(steps, c.steps)
	return &model.Result{
		Resolution:   c.cable.Resolution,
		Side:         c.potential.Side,
		Method:       c.method.String(),
		Iterations:   c.iterations,
		Mask:         c.mask.Rows(),
		Potential:    c.potential.Rows(),
		CrossSection: c.potential.Column(column),
		Column:       column,
		Ex:           c.field.Ex.Rows(),
		Ey:           c.field.Ey.Rows(),
		E:            c.field.E.Rows(),
		Steps:        steps,
	}
}
