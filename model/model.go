package model

// 同轴电缆参数，前端通过 env 消息下发
type Env struct {
	Resolution      int     `json:"resolution"`       // 每 cm 的网格数
	BarThickness    int     `json:"bar_thickness"`    // 内导体边长
	VacuumThickness int     `json:"vacuum_thickness"` // 真空层厚度
	TubeThickness   int     `json:"tube_thickness"`   // 外导体厚度
	Voltage         float64 `json:"voltage"`          // 内导体电压
	Method          string  `json:"method"`           // jacobi / gauss-seidel
}

// 一次扫描的收敛信息
type Step struct {
	Sweep   int     `json:"sweep"`
	Before  float64 `json:"before"`   // 扫描前自由点电势绝对值之和
	After   float64 `json:"after"`    // 扫描后
	RelDiff float64 `json:"rel_diff"` // |After-Before| / Before，Before 为 0 时为 -1
}

// 计算结果，推送给前端或者写入文件
type Result struct {
	Resolution   int         `json:"resolution"`
	Side         int         `json:"side"`
	Method       string      `json:"method"`
	Iterations   int         `json:"iterations"`
	Mask         [][]bool    `json:"mask"`
	Potential    [][]float64 `json:"potential"`
	CrossSection []float64   `json:"cross_section"`
	Column       int         `json:"column"` // 一维截面所在的列
	Ex           [][]float64 `json:"ex"`
	Ey           [][]float64 `json:"ey"`
	E            [][]float64 `json:"e"`
	Steps        []Step      `json:"steps"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
