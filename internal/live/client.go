package live

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendBuffer   = 256
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Client 一条已接入的连接，出站帧经带缓冲信道由 WritePump 串行写出
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// Send 单发事件给本连接
func (c *Client) Send(event string, data any) {
	c.push(marshal(event, data))
}

// Close 关闭出站信道，WritePump 随之退出。之后不得再投递
func (c *Client) Close() {
	close(c.send)
}

// TryRecv 非阻塞取一帧出站数据，供测试观察
func (c *Client) TryRecv() ([]byte, bool) {
	select {
	case frame := <-c.send:
		return frame, true
	default:
		return nil, false
	}
}

// push 非阻塞投递，队列打满直接丢帧，广播永不等慢客户端
func (c *Client) push(frame []byte) {
	if frame == nil {
		return
	}
	select {
	case c.send <- frame:
	default:
		log.Warn().Msg("出站队列已满，丢弃本帧")
	}
}

// WritePump 顺序写出帧并定时 ping 保活
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Debug().Err(err).Msg("写出失败，等待读循环回收连接")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
