package grid

// Mask 标记可求解的点（真空区域）
// true: 自由点，每次扫描都会更新
// false: 固定点（导体或外边界），电势保持初始化时的值
type Mask struct {
	Side int
	data []bool
}

func NewMask(side int) *Mask {
	return &Mask{
		Side: side,
		data: make([]bool, side*side),
	}
}

func (m *Mask) At(i, j int) bool {
	return m.data[i*m.Side+j]
}

func (m *Mask) Set(i, j int, free bool) {
	m.data[i*m.Side+j] = free
}

// Count 自由点个数
func (m *Mask) Count() int {
	count := 0
	for _, free := range m.data {
		if free {
			count++
		}
	}
	return count
}

// Traverse 按行优先顺序遍历所有自由点
func (m *Mask) Traverse(f func(i, j int)) {
	m.TraverseRows(0, m.Side, f)
}

// TraverseRows 只遍历 [start, end) 行内的自由点
func (m *Mask) TraverseRows(start, end int, f func(i, j int)) {
	for i := start; i < end; i++ {
		row := m.data[i*m.Side : (i+1)*m.Side]
		for j, free := range row {
			if free {
				f(i, j)
			}
		}
	}
}

func (m *Mask) Rows() [][]bool {
	res := make([][]bool, m.Side)
	for i := 0; i < m.Side; i++ {
		res[i] = make([]bool, m.Side)
		copy(res[i], m.data[i*m.Side:(i+1)*m.Side])
	}
	return res
}
