/**
 *
 * 同轴电缆横截面的网格容器
 * 电势、上一次扫描的电势快照、电场分量都使用 Field，行优先存放在一段连续的切片中，
 * 迭代计算主要消耗在逐行遍历上，连续存放有利于局部性
 *
 */

package grid

import (
	"gonum.org/v1/gonum/mat"
)

// Field 边长为 Side 的方阵
type Field struct {
	Side int
	data []float64
}

func NewField(side int) *Field {
	return &Field{
		Side: side,
		data: make([]float64, side*side),
	}
}

// FieldFromRows 由二维切片构建，各行长度必须等于行数
func FieldFromRows(rows [][]float64) *Field {
	f := NewField(len(rows))
	for i, row := range rows {
		if len(row) != f.Side {
			panic("grid: not a square matrix")
		}
		copy(f.Row(i), row)
	}
	return f
}

func (f *Field) At(i, j int) float64 {
	return f.data[i*f.Side+j]
}

func (f *Field) Set(i, j int, v float64) {
	f.data[i*f.Side+j] = v
}

// Row 返回第 i 行，与 Field 共享底层数据
func (f *Field) Row(i int) []float64 {
	return f.data[i*f.Side : (i+1)*f.Side]
}

// Column 第 j 列，按行号顺序拷贝出来
func (f *Field) Column(j int) []float64 {
	res := make([]float64, f.Side)
	for i := 0; i < f.Side; i++ {
		res[i] = f.data[i*f.Side+j]
	}
	return res
}

// CopyFrom 整体拷贝，两者边长必须一致
func (f *Field) CopyFrom(src *Field) {
	if src.Side != f.Side {
		panic("grid: side mismatch")
	}
	copy(f.data, src.data)
}

// Dense 返回共享底层数据的 gonum 矩阵视图
func (f *Field) Dense() *mat.Dense {
	return mat.NewDense(f.Side, f.Side, f.data)
}

// Rows 转成二维切片，用于 json 推送
func (f *Field) Rows() [][]float64 {
	res := make([][]float64, f.Side)
	for i := 0; i < f.Side; i++ {
		res[i] = make([]float64, f.Side)
		copy(res[i], f.Row(i))
	}
	return res
}
