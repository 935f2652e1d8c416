package calculator

import (
	"context"
	"fmt"
	"strings"

	"coax/grid"
	"coax/model"
)

// calculator 的接口定义

type Calculator interface {
	// 迭代直到收敛，返回扫描次数
	Run(ctx context.Context) (int, error)

	// 由收敛后的电势计算电场
	DeriveField()

	// 构建推送数据
	BuildData() *model.Result

	// 获取CalcHub
	GetCalcHub() *CalcHub

	Potential() *grid.Field
	Mask() *grid.Mask
	Steps() []model.Step
}

// 迭代方法
type Method int

const (
	MethodJacobi      Method = 1 // 整体更新，使用上一次扫描的快照
	MethodGaussSeidel Method = 2 // 逐点更新，使用当前值
)

func (m Method) String() string {
	switch m {
	case MethodJacobi:
		return "jacobi"
	case MethodGaussSeidel:
		return "gauss-seidel"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jacobi", "1", "a":
		return MethodJacobi, nil
	case "gauss-seidel", "gaussseidel", "2", "b":
		return MethodGaussSeidel, nil
	}
	return 0, fmt.Errorf("calculator: unknown method %q", s)
}
