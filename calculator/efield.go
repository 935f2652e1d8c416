package calculator

import (
	"math"

	"coax/grid"
)

// 电场的两个分量和大小，只在自由点上有值
type ElectricField struct {
	Ex *grid.Field
	Ey *grid.Field
	E  *grid.Field
}

func NewElectricField(side int) *ElectricField {
	return &ElectricField{
		Ex: grid.NewField(side),
		Ey: grid.NewField(side),
		E:  grid.NewField(side),
	}
}

// DeriveField 中心差分计算电场，网格间距为 1/resolution
func DeriveField(a *grid.Field, mask *grid.Mask, resolution int, out *ElectricField) {
	res := float64(resolution)
	mask.Traverse(func(i, j int) {
		ex := (a.At(i-1, j) - a.At(i+1, j)) * res / 2
		ey := (a.At(i, j-1) - a.At(i, j+1)) * res / 2
		out.Ex.Set(i, j, ex)
		out.Ey.Set(i, j, ey)
		out.E.Set(i, j, math.Sqrt(ex*ex+ey*ey))
	})
}
