package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"

	"coax/calculator"
	"coax/server"
	"coax/sink"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "conf/config.ini", "配置文件路径")
	serve := flag.Bool("serve", false, "启动 websocket 服务，而不是只计算一次")
	flag.Parse()

	cfg, err := calculator.LoadConfig(*confPath)
	if err != nil {
		log.Warn("配置文件读取错误，使用默认配置: ", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *serve {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		s := server.NewServer(cfg.Addr, upgrader, cfg)
		if err := s.Serve(ctx); err != nil {
			log.Fatal("ListenAndServe: ", err)
		}
		return
	}

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg calculator.Config) error {
	c, err := calculator.NewCalculator(cfg)
	if err != nil {
		return err
	}
	it, err := c.Run(ctx)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"Resolution": cfg.Cable.Resolution,
		"Iterations": it,
	}).Info("No. of iterations to converge = ", it)

	c.DeriveField()

	var sinks sink.Multi
	if cfg.Text {
		sinks = append(sinks, sink.NewTextSink(cfg.OutputDir))
	}
	if cfg.Plot {
		sinks = append(sinks, sink.NewPlotSink(cfg.OutputDir))
	}
	return sinks.Export(c.BuildData())
}
