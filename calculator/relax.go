package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"coax/cable"
	"coax/grid"
	"coax/model"

	log "github.com/sirupsen/logrus"
)

var ErrNotConverged = errors.New("calculator: not converged")

var _ Calculator = (*Relaxation)(nil)

type Relaxation struct {
	// 计算参数
	cable         cable.Cable
	method        Method
	tolerance     float64
	maxIterations int

	potential *grid.Field // 电势
	previous  *grid.Field // 上一次扫描的电势快照，jacobi 方法使用
	mask      *grid.Mask  // 自由点
	field     *ElectricField

	sweeper sweeper
	e       *executor

	steps      []model.Step
	iterations int

	calcHub *CalcHub

	mu sync.Mutex // 保护 push data 时对电势数据的并发访问
}

func NewCalculator(cfg Config) (*Relaxation, error) {
	start := time.Now()
	c := &Relaxation{
		cable:         cfg.Cable,
		method:        cfg.Method,
		tolerance:     cfg.Tolerance,
		maxIterations: cfg.MaxIterations,
		calcHub:       NewCalcHub(),
	}
	if c.tolerance <= 0 {
		c.tolerance = DefaultTolerance
	}
	if err := c.cable.Validate(); err != nil {
		return nil, err
	}

	side := c.cable.SideLength()
	c.potential = grid.NewField(side)
	c.previous = grid.NewField(side)
	c.mask = grid.NewMask(side)
	c.field = NewElectricField(side)
	if err := c.cable.Init(c.potential, c.previous, c.mask); err != nil {
		return nil, err
	}

	switch c.method {
	case MethodJacobi:
		s := newJacobi(c.potential, c.previous, c.mask, cfg.Workers)
		c.sweeper, c.e = s, s.e
	case MethodGaussSeidel:
		c.sweeper = newGaussSeidel(c.potential, c.mask)
	default:
		return nil, fmt.Errorf("calculator: unknown method %d", int(c.method))
	}

	log.WithFields(log.Fields{
		"side":      side,
		"freeCells": c.mask.Count(),
		"method":    c.method,
		"tolerance": c.tolerance,
	}).Info("初始化时间: ", time.Since(start))
	return c, nil
}

func (c *Relaxation) GetCalcHub() *CalcHub {
	return c.calcHub
}

// sum 自由点电势绝对值之和，按行优先顺序累加
func (c *Relaxation) sum() float64 {
	s := 0.0
	c.mask.Traverse(func(i, j int) {
		s += math.Abs(c.potential.At(i, j))
	})
	return s
}

// Run 不断扫描直到两次扫描之间的相对变化不超过 tolerance
// 任意一个和为 0 时不判定收敛，避免全 0 初始状态被误判
func (c *Relaxation) Run(ctx context.Context) (int, error) {
	defer c.calcHub.FinishSignal()
	if c.mask.Count() == 0 {
		log.Warn("没有自由点，不需要迭代")
		return 0, nil
	}
	if c.e != nil {
		c.e.run()
		defer c.e.stop()
	}

	start := time.Now()
	kconv := 0
	for {
		select {
		case <-ctx.Done():
			log.WithField("sweeps", kconv).Warn("计算被中止")
			return kconv, ctx.Err()
		default:
		}

		si := c.sum()
		c.mu.Lock()
		c.sweeper.sweep()
		c.mu.Unlock()
		sf := c.sum()
		if si == 0 && sf == 0 {
			// 所有电势都为 0，已经是解，再扫描也不会变化
			log.Warn("自由点电势始终为 0，不需要迭代")
			return 0, nil
		}
		diff := math.Abs(sf - si)
		kconv++

		step := model.Step{Sweep: kconv, Before: si, After: sf, RelDiff: -1}
		if si != 0 {
			step.RelDiff = diff / si
		}
		c.record(step)

		if diff <= math.Abs(c.tolerance*si) && si != 0 && sf != 0 {
			break
		}
		if c.maxIterations > 0 && kconv >= c.maxIterations {
			return kconv, fmt.Errorf("%w after %d sweeps, relative diff %g", ErrNotConverged, kconv, step.RelDiff)
		}
	}

	log.WithFields(log.Fields{
		"resolution": c.cable.Resolution,
		"method":     c.method,
		"iterations": kconv,
		"duration":   time.Since(start),
	}).Info("电势场收敛")
	return kconv, nil
}

func (c *Relaxation) record(step model.Step) {
	c.mu.Lock()
	c.steps = append(c.steps, step)
	c.iterations = step.Sweep
	c.mu.Unlock()

	log.WithFields(log.Fields{
		"before":  step.Before,
		"after":   step.After,
		"relDiff": step.RelDiff,
	}).Debug("sweep ", step.Sweep)
	c.calcHub.PushSignal(step)
}

func (c *Relaxation) DeriveField() {
	c.mu.Lock()
	defer c.mu.Unlock()
	DeriveField(c.potential, c.mask, c.cable.Resolution, c.field)
}

func (c *Relaxation) Potential() *grid.Field {
	return c.potential
}

func (c *Relaxation) Mask() *grid.Mask {
	return c.mask
}

func (c *Relaxation) Field() *ElectricField {
	return c.field
}

func (c *Relaxation) Iterations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.iterations
}

func (c *Relaxation) Steps() []model.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]model.Step, len(c.steps))
	copy(res, c.steps)
	return res
}

// CrossSection 穿过内导体中线的一列电势，每行一个值
func (c *Relaxation) CrossSection() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.potential.Column(c.cable.CrossSectionColumn())
}
