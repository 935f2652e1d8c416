package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"coax/calculator"
	"coax/model"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// 请求消息类型
const (
	MsgEnv   = "env"
	MsgStart = "start"
	MsgStop  = "stop"
)

// 回复消息类型
const (
	MsgEnvSet    = "envSet"
	MsgStarted   = "started"
	MsgIteration = "iteration"
	MsgResult    = "result"
	MsgStopped   = "stopped"
	MsgError     = "error"
)

var progressPeriod = 200 * time.Millisecond

// Hub 负责一个连接上的请求处理和结果推送
type Hub struct {
	cfg  calculator.Config
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response，只有 handleResponse 写 conn
	send chan model.Msg
	done chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc // 正在运行的计算
	running bool
	once    sync.Once
}

func NewHub(conn *websocket.Conn, cfg calculator.Config) *Hub {
	return &Hub{
		cfg:  cfg,
		conn: conn,
		msg:  make(chan model.Msg, 10),
		send: make(chan model.Msg, 10),
		done: make(chan struct{}),
	}
}

func (h *Hub) close() {
	h.once.Do(func() {
		close(h.done)
		h.stop()
	})
}

func (h *Hub) reply(typ, content string) {
	select {
	case h.send <- model.Msg{Type: typ, Content: content}:
	case <-h.done:
	}
}

func (h *Hub) replyJSON(typ string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("err: ", err)
		h.reply(MsgError, err.Error())
		return
	}
	h.reply(typ, string(data))
}

func (h *Hub) handleResponse() {
	for {
		select {
		case reply := <-h.send:
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.Println("err: ", err)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			switch msg.Type {
			case MsgEnv:
				h.setEnv(msg.Content)
			case MsgStart:
				h.start()
			case MsgStop:
				h.stop()
				h.reply(MsgStopped, "stopped")
			default:
				log.Println("no such type: ", msg.Type)
				h.reply(MsgError, "no such type: "+msg.Type)
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) setEnv(content string) {
	var env model.Env
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		h.reply(MsgError, err.Error())
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.reply(MsgError, "calculation is running")
		return
	}
	if env.Method != "" {
		method, err := calculator.ParseMethod(env.Method)
		if err != nil {
			h.reply(MsgError, err.Error())
			return
		}
		h.cfg.Method = method
	}
	h.cfg.Cable.SetFromEnv(env)
	h.reply(MsgEnvSet, "env is set")
}

func (h *Hub) start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		h.reply(MsgError, "calculation is running")
		return
	}
	c, err := calculator.NewCalculator(h.cfg)
	if err != nil {
		h.reply(MsgError, err.Error())
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.running = true
	h.reply(MsgStarted, "")
	go h.run(ctx, c)
}

func (h *Hub) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
}

func (h *Hub) run(ctx context.Context, c calculator.Calculator) {
	defer func() {
		h.mu.Lock()
		h.cancel()
		h.running = false
		h.mu.Unlock()
	}()

	go h.pushProgress(c.GetCalcHub())
	_, err := c.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		h.reply(MsgError, err.Error())
		return
	}
	c.DeriveField()
	h.replyJSON(MsgResult, c.BuildData())
}

// pushProgress 周期性推送最新一次扫描的收敛信息
func (h *Hub) pushProgress(calcHub *calculator.CalcHub) {
	ticker := time.NewTicker(progressPeriod)
	defer ticker.Stop()
	var latest *model.Step
	for {
		select {
		case step := <-calcHub.PeriodCalcResult:
			latest = &step
		case <-ticker.C:
			if latest != nil {
				h.replyJSON(MsgIteration, latest)
				latest = nil
			}
		case <-calcHub.Finished:
			return
		case <-h.done:
			return
		}
	}
}
