package handlers

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"odditor/internal/live"
	"odditor/internal/models"
)

// 读超时，pong 到达即续期
const liveReadWait = 60 * time.Second

type LiveHandle struct {
	hub      *live.Hub
	pipeline *live.Pipeline
}

// RegisterLive 挂载实时通道，非升级请求直接拒绝
func RegisterLive(app *fiber.App, hub *live.Hub, pipeline *live.Pipeline) {
	handler := LiveHandle{hub: hub, pipeline: pipeline}

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(handler.Serve))
}

// Serve 单连接读循环：join 入房，vote 进流水线，断开即离房。
// 离房不影响任何投票数据
func (h *LiveHandle) Serve(conn *websocket.Conn) {
	c := live.NewClient(conn)
	defer func() {
		h.hub.Leave(c)
		c.Close()
	}()

	go c.WritePump()

	_ = conn.SetReadDeadline(time.Now().Add(liveReadWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(liveReadWait))
	})

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("读循环结束")
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(liveReadWait))

		var in models.Inbound
		if err = json.Unmarshal(frame, &in); err != nil {
			c.Send(models.EventErr, "Bad frame")
			continue
		}

		switch in.Event {
		case models.EventJoin:
			var req models.JoinRequest
			if err = json.Unmarshal(in.Data, &req); err != nil {
				c.Send(models.EventErr, "Bad frame")
				continue
			}
			if err = h.hub.Join(c, req.PollId); err != nil {
				c.Send(models.EventErr, "Poll not found")
			}
		case models.EventVote:
			var req models.VoteRequest
			if err = json.Unmarshal(in.Data, &req); err != nil {
				c.Send(models.EventErr, "Bad frame")
				continue
			}
			h.pipeline.HandleVote(c, req)
		default:
			c.Send(models.EventErr, "Unknown event: "+in.Event)
		}
	}
}
