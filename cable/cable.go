package cable

import (
	"errors"
	"fmt"
	"math"

	"coax/grid"
	"coax/model"

	log "github.com/sirupsen/logrus"
)

// 同轴电缆的横截面规格 + 内导体电压

// 横截面由三层同心正方形组成，由外到内：
// 1. 外导体（tube），电势固定为 0
// 2. 真空层（vacuum），需要求解的区域
// 3. 内导体（bar），电势固定为 Voltage

// 长度单位为 cm，Resolution 为每 cm 的网格数

const (
	DefaultResolution      = 10
	DefaultBarThickness    = 2
	DefaultVacuumThickness = 2
	DefaultTubeThickness   = 1
	DefaultVoltage         = 10.0
)

const (
	RegionTube   = 0 // 外导体
	RegionVacuum = 1 // 真空
	RegionBar    = 2 // 内导体
)

var (
	ErrInvalidParameter   = errors.New("cable: invalid parameter")
	ErrDegenerateGeometry = errors.New("cable: degenerate geometry")
	ErrBoundary           = errors.New("cable: free cell without four in-bounds neighbours")
)

type Cable struct {
	Resolution      int
	BarThickness    int
	VacuumThickness int
	TubeThickness   int
	Voltage         float64
}

func NewCable() *Cable {
	return &Cable{
		Resolution:      DefaultResolution,
		BarThickness:    DefaultBarThickness,
		VacuumThickness: DefaultVacuumThickness,
		TubeThickness:   DefaultTubeThickness,
		Voltage:         DefaultVoltage,
	}
}

// SideLength 每条边的网格数
func (c *Cable) SideLength() int {
	return c.Resolution * (c.BarThickness + 2*c.VacuumThickness + 2*c.TubeThickness)
}

func (c *Cable) SetFromEnv(env model.Env) {
	c.Resolution = env.Resolution
	c.BarThickness = env.BarThickness
	c.VacuumThickness = env.VacuumThickness
	c.TubeThickness = env.TubeThickness
	c.Voltage = env.Voltage
	log.WithFields(log.Fields{
		"Resolution":      c.Resolution,
		"BarThickness":    c.BarThickness,
		"VacuumThickness": c.VacuumThickness,
		"TubeThickness":   c.TubeThickness,
		"Voltage":         c.Voltage,
		"SideLength":      c.SideLength(),
	}).Info("设置电缆参数")
}

// Validate 在分配网格之前检查参数，保证 tube ⊃ vacuum ⊃ bar 且每层都非空
func (c *Cable) Validate() error {
	params := []struct {
		name  string
		value int
	}{
		{"resolution", c.Resolution},
		{"bar thickness", c.BarThickness},
		{"vacuum thickness", c.VacuumThickness},
		{"tube thickness", c.TubeThickness},
	}
	for _, p := range params {
		if p.value < 0 {
			return fmt.Errorf("%w: %s = %d", ErrInvalidParameter, p.name, p.value)
		}
	}
	if c.Resolution == 0 {
		return fmt.Errorf("%w: resolution = 0", ErrInvalidParameter)
	}
	// 厚度为 0 时对应的区域为空
	if c.TubeThickness == 0 {
		return fmt.Errorf("%w: tube thickness = 0 leaves no fixed boundary ring", ErrDegenerateGeometry)
	}
	if c.VacuumThickness == 0 {
		return fmt.Errorf("%w: vacuum thickness = 0 leaves no free cells", ErrDegenerateGeometry)
	}
	if c.BarThickness == 0 {
		return fmt.Errorf("%w: bar thickness = 0 leaves no inner conductor", ErrDegenerateGeometry)
	}
	if math.IsNaN(c.Voltage) || math.IsInf(c.Voltage, 0) {
		return fmt.Errorf("%w: voltage = %v", ErrInvalidParameter, c.Voltage)
	}
	return nil
}

// SetVoltage 行列下标都在 [outer*res, side-outer*res) 内的点设为 potential，其余点不变
func (c *Cable) SetVoltage(f *grid.Field, potential float64, outer int) {
	lo, hi := c.bounds(outer)
	for i := lo; i < hi; i++ {
		row := f.Row(i)
		for j := lo; j < hi; j++ {
			row[j] = potential
		}
	}
}

// SetMask 与 SetVoltage 相同的范围，设置自由点标记
func (c *Cable) SetMask(m *grid.Mask, free bool, outer int) {
	lo, hi := c.bounds(outer)
	for i := lo; i < hi; i++ {
		for j := lo; j < hi; j++ {
			m.Set(i, j, free)
		}
	}
}

func (c *Cable) bounds(outer int) (int, int) {
	side := c.SideLength()
	return outer * c.Resolution, side - outer*c.Resolution
}

// Init 初始化电势和自由点标记
// a 为当前电势，a0 为上一次扫描的快照，两者初始完全相同
func (c *Cable) Init(a, a0 *grid.Field, m *grid.Mask) error {
	if err := c.Validate(); err != nil {
		return err
	}
	side := c.SideLength()
	if a.Side != side || a0.Side != side || m.Side != side {
		return fmt.Errorf("%w: grid side %d/%d/%d, want %d", ErrInvalidParameter, a.Side, a0.Side, m.Side, side)
	}

	// 内导体电压
	c.SetVoltage(a, c.Voltage, c.VacuumThickness+c.TubeThickness)
	c.SetVoltage(a0, c.Voltage, c.VacuumThickness+c.TubeThickness)

	// 先把外导体以内全部标记为自由点，再把内导体标记回固定点，顺序不能颠倒
	c.SetMask(m, true, c.TubeThickness)
	c.SetMask(m, false, c.TubeThickness+c.VacuumThickness)

	if m.Count() == 0 {
		return fmt.Errorf("%w: no free cells", ErrDegenerateGeometry)
	}
	if err := CheckBoundary(m); err != nil {
		return err
	}
	return c.CheckContainment(m)
}

// CheckBoundary 每个自由点的上下左右四个邻居都必须在网格内
func CheckBoundary(m *grid.Mask) error {
	var err error
	m.Traverse(func(i, j int) {
		if err != nil {
			return
		}
		if i < 1 || j < 1 || i > m.Side-2 || j > m.Side-2 {
			err = fmt.Errorf("%w: (%d, %d) in a %dx%d grid", ErrBoundary, i, j, m.Side, m.Side)
		}
	})
	return err
}

// CheckContainment 自由点必须恰好是真空层
func (c *Cable) CheckContainment(m *grid.Mask) error {
	for i := 0; i < m.Side; i++ {
		for j := 0; j < m.Side; j++ {
			if m.At(i, j) != (c.WhichRegion(i, j) == RegionVacuum) {
				return fmt.Errorf("%w: cell (%d, %d) in region %d has free = %v",
					ErrDegenerateGeometry, i, j, c.WhichRegion(i, j), m.At(i, j))
			}
		}
	}
	return nil
}

// WhichRegion 获取点 (i, j) 在哪一层
func (c *Cable) WhichRegion(i, j int) int {
	inside := func(outer int) bool {
		lo, hi := c.bounds(outer)
		return i >= lo && i < hi && j >= lo && j < hi
	}
	if inside(c.TubeThickness + c.VacuumThickness) {
		return RegionBar
	}
	if inside(c.TubeThickness) {
		return RegionVacuum
	}
	return RegionTube
}

// CrossSectionColumn 一维截面所在的列，穿过内导体的竖直中线
func (c *Cable) CrossSectionColumn() int {
	mid := float64(c.TubeThickness+c.VacuumThickness) + float64(c.BarThickness)/2
	return int(math.Ceil(float64(c.Resolution) * mid))
}
