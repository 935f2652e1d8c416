package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coax/calculator"
	"coax/sink"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_WritesOutputs(t *testing.T) {
	cfg := calculator.DefaultConfig()
	cfg.Cable.Resolution = 2
	cfg.OutputDir = t.TempDir()
	cfg.Text = true
	cfg.Plot = false

	require.NoError(t, run(context.Background(), cfg))
	for _, name := range []string{sink.MaskFile, sink.StepsFile, sink.PotentialFile, sink.CrossSectionFile, sink.EFieldFile} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_DegenerateConfig(t *testing.T) {
	cfg := calculator.DefaultConfig()
	cfg.Cable.VacuumThickness = 0
	cfg.OutputDir = t.TempDir()
	assert.Error(t, run(context.Background(), cfg))
}
