package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"coax/model"

	log "github.com/sirupsen/logrus"
)

const (
	MaskFile         = "mask.txt"
	StepsFile        = "iteration_steps.txt"
	PotentialFile    = "potential.txt"
	CrossSectionFile = "cross_section.txt"
	EFieldFile       = "efield.txt"
)

// TextSink 以制表符分隔的文本写入 Dir 目录
type TextSink struct {
	Dir string
}

func NewTextSink(dir string) *TextSink {
	return &TextSink{Dir: dir}
}

func (s *TextSink) Export(res *model.Result) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("sink: create output dir: %w", err)
	}
	files := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{MaskFile, func(w io.Writer) error { return WriteMask(w, res.Mask) }},
		{StepsFile, func(w io.Writer) error { return WriteSteps(w, res.Steps) }},
		{PotentialFile, func(w io.Writer) error { return WriteMatrix(w, res.Potential) }},
		{CrossSectionFile, func(w io.Writer) error { return WriteColumn(w, res.CrossSection) }},
		{EFieldFile, func(w io.Writer) error { return WriteMatrix(w, res.E) }},
	}
	for _, f := range files {
		if err := s.writeFile(f.name, f.write); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{
		"dir":   s.Dir,
		"files": len(files),
	}).Info("文本结果已写入")
	return nil
}

func (s *TextSink) writeFile(name string, write func(w io.Writer) error) error {
	path := filepath.Join(s.Dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: %w", err)
	}
	w := bufio.NewWriter(file)
	if err := write(w); err != nil {
		file.Close()
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	return file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteMatrix 每行一行，元素之间用制表符分隔
func WriteMatrix(w io.Writer, m [][]float64) error {
	for _, row := range m {
		for j, v := range row {
			if j > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, formatFloat(v)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteMask 自由点写 1，固定点写 0
func WriteMask(w io.Writer, m [][]bool) error {
	for _, row := range m {
		for j, free := range row {
			if j > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			v := "0"
			if free {
				v = "1"
			}
			if _, err := io.WriteString(w, v); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteSteps 每次扫描一行：序号 扫描前的和 扫描后的和 相对变化
func WriteSteps(w io.Writer, steps []model.Step) error {
	for _, s := range steps {
		rel := "inf"
		if s.RelDiff >= 0 {
			rel = formatFloat(s.RelDiff)
		}
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Sweep, formatFloat(s.Before), formatFloat(s.After), rel)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteColumn 一行一个值
func WriteColumn(w io.Writer, values []float64) error {
	for _, v := range values {
		if _, err := io.WriteString(w, formatFloat(v)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
