package calculator

import (
	"sync"

	"coax/model"
)

type CalcHub struct {
	// 每次扫描的收敛信息推送，只保留最新的一条
	PeriodCalcResult chan model.Step
	// 计算结束
	Finished chan struct{}

	once sync.Once
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		PeriodCalcResult: make(chan model.Step, 1),
		Finished:         make(chan struct{}),
	}
}

// PushSignal 不阻塞计算，来不及消费的旧数据直接丢弃
func (ch *CalcHub) PushSignal(step model.Step) {
	select {
	case ch.PeriodCalcResult <- step:
		return
	default:
	}
	select {
	case <-ch.PeriodCalcResult:
	default:
	}
	select {
	case ch.PeriodCalcResult <- step:
	default:
	}
}

func (ch *CalcHub) FinishSignal() {
	ch.once.Do(func() {
		close(ch.Finished)
	})
}
