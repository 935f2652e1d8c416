package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coax/calculator"
	"coax/model"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T) *websocket.Conn {
	s := NewServer(":0", websocket.Upgrader{}, calculator.DefaultConfig())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, content interface{}) {
	msg := model.Msg{Type: typ}
	if content != nil {
		data, err := json.Marshal(content)
		require.NoError(t, err)
		msg.Content = string(data)
	}
	require.NoError(t, conn.WriteJSON(&msg))
}

// waitFor 读取消息直到出现 typ 类型
func waitFor(t *testing.T, conn *websocket.Conn, typ string) model.Msg {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	for {
		var msg model.Msg
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == typ {
			return msg
		}
		require.NotEqual(t, MsgError, msg.Type, msg.Content)
	}
}

func TestHub_EnvStartResult(t *testing.T) {
	conn := dial(t)

	send(t, conn, MsgEnv, model.Env{
		Resolution:      1,
		BarThickness:    2,
		VacuumThickness: 2,
		TubeThickness:   1,
		Voltage:         10,
		Method:          "jacobi",
	})
	waitFor(t, conn, MsgEnvSet)

	send(t, conn, MsgStart, nil)
	msg := waitFor(t, conn, MsgResult)

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(msg.Content), &res))
	assert.Equal(t, 8, res.Side)
	assert.Equal(t, "jacobi", res.Method)
	assert.Greater(t, res.Iterations, 0)
	assert.Len(t, res.CrossSection, 8)
	assert.Len(t, res.Steps, res.Iterations)
	assert.Equal(t, 10.0, res.Potential[3][3])
}

func TestHub_RejectsDegenerateEnv(t *testing.T) {
	conn := dial(t)

	send(t, conn, MsgEnv, model.Env{Resolution: 1, BarThickness: 2, VacuumThickness: 0, TubeThickness: 1, Voltage: 10})
	waitFor(t, conn, MsgEnvSet)

	send(t, conn, MsgStart, nil)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var msg model.Msg
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Content, "degenerate")
}

func TestHub_UnknownType(t *testing.T) {
	conn := dial(t)
	send(t, conn, "bogus", nil)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var msg model.Msg
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MsgError, msg.Type)
}

func TestHub_Stop(t *testing.T) {
	conn := dial(t)
	send(t, conn, MsgStop, nil)
	waitFor(t, conn, MsgStopped)
}
