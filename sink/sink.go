package sink

import (
	"coax/model"
)

// Sink 接收计算结果并导出
type Sink interface {
	Export(res *model.Result) error
}

// Multi 依次调用多个 Sink，遇到错误立即返回
type Multi []Sink

func (m Multi) Export(res *model.Result) error {
	for _, s := range m {
		if err := s.Export(res); err != nil {
			return err
		}
	}
	return nil
}
