package calculator

import (
	"testing"

	"coax/model"

	"github.com/stretchr/testify/assert"
)

func TestCalcHub_KeepsLatest(t *testing.T) {
	ch := NewCalcHub()
	for i := 1; i <= 5; i++ {
		ch.PushSignal(model.Step{Sweep: i})
	}
	step := <-ch.PeriodCalcResult
	assert.Equal(t, 5, step.Sweep)

	ch.FinishSignal()
	ch.FinishSignal()
	_, ok := <-ch.Finished
	assert.False(t, ok)
}
