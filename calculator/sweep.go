package calculator

import (
	"coax/grid"
)

// 一次扫描：对所有自由点做一次五点平均
type sweeper interface {
	sweep()
}

// jacobi 方法
// 新值全部由上一次扫描的快照 previous 计算，扫描结束后再把 potential 拷贝到 previous，
// 同一次扫描内各点互不依赖，可以按行分块并行
type jacobi struct {
	potential *grid.Field
	previous  *grid.Field
	mask      *grid.Mask
	e         *executor // 为 nil 时单线程计算
}

func newJacobi(potential, previous *grid.Field, mask *grid.Mask, workers int) *jacobi {
	s := &jacobi{
		potential: potential,
		previous:  previous,
		mask:      mask,
	}
	if workers > 1 {
		s.e = newExecutor(workers, s.sweepRows)
	}
	return s
}

func (s *jacobi) sweep() {
	if s.e == nil {
		s.sweepRows(task{start: 0, end: s.potential.Side})
	} else {
		s.e.dispatchTask(0, s.potential.Side)
	}
	s.previous.CopyFrom(s.potential)
}

func (s *jacobi) sweepRows(t task) {
	a, a0 := s.potential, s.previous
	s.mask.TraverseRows(t.start, t.end, func(i, j int) {
		a.Set(i, j, 0.25*(a0.At(i+1, j)+a0.At(i-1, j)+a0.At(i, j+1)+a0.At(i, j-1)))
	})
}

// gauss-seidel 方法
// 按行优先顺序逐点更新，左边和上边的邻居已经是本次扫描的新值，
// 结果依赖遍历顺序，因此不做并行；红黑排序可以并行但收敛轨迹不同
type gaussSeidel struct {
	potential *grid.Field
	mask      *grid.Mask
}

func newGaussSeidel(potential *grid.Field, mask *grid.Mask) *gaussSeidel {
	return &gaussSeidel{
		potential: potential,
		mask:      mask,
	}
}

func (s *gaussSeidel) sweep() {
	a := s.potential
	s.mask.Traverse(func(i, j int) {
		a.Set(i, j, 0.25*(a.At(i+1, j)+a.At(i-1, j)+a.At(i, j+1)+a.At(i, j-1)))
	})
}
