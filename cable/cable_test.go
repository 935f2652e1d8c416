package cable

import (
	"testing"

	"coax/grid"
	"coax/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallCable() *Cable {
	return &Cable{
		Resolution:      1,
		BarThickness:    2,
		VacuumThickness: 2,
		TubeThickness:   1,
		Voltage:         10,
	}
}

func initGrids(t *testing.T, c *Cable) (*grid.Field, *grid.Field, *grid.Mask) {
	side := c.SideLength()
	a, a0, m := grid.NewField(side), grid.NewField(side), grid.NewMask(side)
	require.NoError(t, c.Init(a, a0, m))
	return a, a0, m
}

func TestSideLength(t *testing.T) {
	assert.Equal(t, 8, smallCable().SideLength())
	assert.Equal(t, 80, NewCable().SideLength())
}

func TestInit_SmallCable(t *testing.T) {
	c := smallCable()
	a, a0, m := initGrids(t, c)

	// 2x2 的内导体位于 [3, 5)
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			bar := i >= 3 && i < 5 && j >= 3 && j < 5
			free := !bar && i >= 1 && i < 7 && j >= 1 && j < 7
			if bar {
				assert.Equal(t, 10.0, a.At(i, j), "(%d, %d)", i, j)
			} else {
				assert.Equal(t, 0.0, a.At(i, j), "(%d, %d)", i, j)
			}
			assert.Equal(t, a.At(i, j), a0.At(i, j))
			assert.Equal(t, free, m.At(i, j), "(%d, %d)", i, j)
		}
	}
	assert.Equal(t, 36-4, m.Count())
}

func TestInit_MaskContainment(t *testing.T) {
	cables := []*Cable{
		smallCable(),
		NewCable(),
		{Resolution: 3, BarThickness: 1, VacuumThickness: 3, TubeThickness: 2, Voltage: -5},
		{Resolution: 2, BarThickness: 3, VacuumThickness: 1, TubeThickness: 1, Voltage: 1},
	}
	for _, c := range cables {
		_, _, m := initGrids(t, c)
		side := c.SideLength()
		count := m.Count()
		assert.Greater(t, count, 0)
		assert.Less(t, count, side*side)

		for k := 0; k < side; k++ {
			// 最外一圈永远是固定点
			assert.False(t, m.At(0, k))
			assert.False(t, m.At(side-1, k))
			assert.False(t, m.At(k, 0))
			assert.False(t, m.At(k, side-1))
		}
		for i := 0; i < side; i++ {
			for j := 0; j < side; j++ {
				if c.WhichRegion(i, j) == RegionBar {
					assert.False(t, m.At(i, j))
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		c    Cable
		err  error
	}{
		{"no vacuum", Cable{Resolution: 1, BarThickness: 2, VacuumThickness: 0, TubeThickness: 1}, ErrDegenerateGeometry},
		{"no tube", Cable{Resolution: 1, BarThickness: 2, VacuumThickness: 2, TubeThickness: 0}, ErrDegenerateGeometry},
		{"no bar", Cable{Resolution: 1, BarThickness: 0, VacuumThickness: 2, TubeThickness: 1}, ErrDegenerateGeometry},
		{"zero resolution", Cable{Resolution: 0, BarThickness: 2, VacuumThickness: 2, TubeThickness: 1}, ErrInvalidParameter},
		{"negative", Cable{Resolution: 1, BarThickness: -2, VacuumThickness: 2, TubeThickness: 1}, ErrInvalidParameter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.c.Validate(), tc.err)
		})
	}
	assert.NoError(t, smallCable().Validate())
}

func TestInit_RejectsDegenerate(t *testing.T) {
	c := smallCable()
	c.VacuumThickness = 0
	side := c.SideLength()
	err := c.Init(grid.NewField(side), grid.NewField(side), grid.NewMask(side))
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestInit_RejectsWrongGridSize(t *testing.T) {
	c := smallCable()
	err := c.Init(grid.NewField(8), grid.NewField(7), grid.NewMask(8))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCheckBoundary(t *testing.T) {
	m := grid.NewMask(4)
	m.Set(1, 1, true)
	assert.NoError(t, CheckBoundary(m))

	m.Set(0, 2, true)
	assert.ErrorIs(t, CheckBoundary(m), ErrBoundary)
}

func TestWrongMaskOrderIsDetected(t *testing.T) {
	c := smallCable()
	m := grid.NewMask(c.SideLength())
	c.SetMask(m, false, c.TubeThickness+c.VacuumThickness)
	c.SetMask(m, true, c.TubeThickness)
	// 顺序颠倒后内导体也被标记为自由点
	assert.ErrorIs(t, c.CheckContainment(m), ErrDegenerateGeometry)
}

func TestCrossSectionColumn(t *testing.T) {
	assert.Equal(t, 4, smallCable().CrossSectionColumn())
	assert.Equal(t, 40, NewCable().CrossSectionColumn())
	c := &Cable{Resolution: 10, BarThickness: 3, VacuumThickness: 2, TubeThickness: 1}
	assert.Equal(t, 45, c.CrossSectionColumn())
}

func TestSetFromEnv(t *testing.T) {
	c := NewCable()
	c.SetFromEnv(model.Env{Resolution: 1, BarThickness: 2, VacuumThickness: 2, TubeThickness: 1, Voltage: 10})
	assert.Equal(t, *smallCable(), *c)
}
