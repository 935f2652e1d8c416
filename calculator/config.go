package calculator

import (
	"coax/cable"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const (
	DefaultTolerance = 1e-14
	DefaultWorkers   = 4
)

type Config struct {
	Cable cable.Cable

	Method        Method
	Tolerance     float64 // 相对收敛容差
	MaxIterations int     // 0 表示不限制
	Workers       int     // jacobi 方法并行计算的 worker 数

	OutputDir string
	Text      bool
	Plot      bool

	Addr     string
	LogLevel string
}

// LoadConfig 读取 ini 配置文件，缺省的项使用默认值
func LoadConfig(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return DefaultConfig(), err
	}
	return loadCfg(file), nil
}

func DefaultConfig() Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Config {
	cfg := Config{
		Cable: cable.Cable{
			Resolution:      file.Section("cable").Key("Resolution").MustInt(cable.DefaultResolution),
			BarThickness:    file.Section("cable").Key("BarThickness").MustInt(cable.DefaultBarThickness),
			VacuumThickness: file.Section("cable").Key("VacuumThickness").MustInt(cable.DefaultVacuumThickness),
			TubeThickness:   file.Section("cable").Key("TubeThickness").MustInt(cable.DefaultTubeThickness),
			Voltage:         file.Section("cable").Key("Voltage").MustFloat64(cable.DefaultVoltage),
		},
		Tolerance:     file.Section("calculator").Key("Tolerance").MustFloat64(DefaultTolerance),
		MaxIterations: file.Section("calculator").Key("MaxIterations").MustInt(0),
		Workers:       file.Section("calculator").Key("Workers").MustInt(DefaultWorkers),
		OutputDir:     file.Section("output").Key("Dir").MustString("out"),
		Text:          file.Section("output").Key("Text").MustBool(true),
		Plot:          file.Section("output").Key("Plot").MustBool(true),
		Addr:          file.Section("server").Key("Addr").MustString(":9000"),
		LogLevel:      file.Section("log").Key("Level").In("info", []string{"debug", "info", "warn", "error"}),
	}

	method := file.Section("calculator").Key("Method").In("gauss-seidel", []string{"jacobi", "gauss-seidel"})
	cfg.Method, _ = ParseMethod(method)

	if cfg.Tolerance <= 0 {
		log.Warn("Tolerance 必须为正数，使用默认值: ", DefaultTolerance)
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxIterations < 0 {
		cfg.MaxIterations = 0
	}
	return cfg
}
