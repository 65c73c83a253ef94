package live

import (
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"

	"odditor/internal/models"
	"odditor/internal/poll"
)

// Hub 房间路由：连接与短码双向索引，广播只进相关房间
type Hub struct {
	store *poll.Store

	mu sync.RWMutex
	// 短码 -> 房间成员
	rooms map[string]map[*Client]struct{}
	// 连接 -> 当前所在短码，一条连接同时只在一个房间
	joined map[*Client]string
}

func NewHub(store *poll.Store) *Hub {
	return &Hub{
		store:  store,
		rooms:  make(map[string]map[*Client]struct{}),
		joined: make(map[*Client]string),
	}
}

// Join 订阅指定投票并立即回发全量快照，后来者与发起者状态收敛一致。
// 重复 join 以最后一次为准，join 失败则原订阅不动
func (h *Hub) Join(c *Client, pollId string) error {
	code := poll.NormalizeCode(pollId)
	if !h.store.Has(code) {
		return errors.WithStack(poll.ErrNotFound)
	}

	// 先占座再取快照：快照在 store 锁内送达，
	// 占座之后、快照之前提交的票会以广播形式补到队尾，状态只新不旧
	h.mu.Lock()
	if prev, ok := h.joined[c]; ok {
		h.detach(c, prev)
	}
	room, ok := h.rooms[code]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[code] = room
	}
	room[c] = struct{}{}
	h.joined[c] = code
	h.mu.Unlock()

	return h.store.Snapshot(code, func(snap *models.Poll) {
		c.push(marshal(models.EventPoll, snap))
	})
}

// Leave 把连接摘出房间，投票数据不受任何影响
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if code, ok := h.joined[c]; ok {
		h.detach(c, code)
	}
}

// detach 调用方必须持有 h.mu
func (h *Hub) detach(c *Client, code string) {
	delete(h.joined, c)
	if room, ok := h.rooms[code]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast 向房间所有成员（含触发者本人）投递事件，不等确认不重发
func (h *Hub) Broadcast(pollId string, event string, data any) {
	frame := marshal(event, data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[poll.NormalizeCode(pollId)] {
		c.push(frame)
	}
}

// Stats 房间数、连接数与在播短码，给运维接口
func (h *Hub) Stats() (int, int, []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := 0
	for _, room := range h.rooms {
		conns += len(room)
	}
	return len(h.rooms), conns, maps.Keys(h.rooms)
}

func marshal(event string, data any) []byte {
	frame, err := json.Marshal(models.Envelope{Event: event, Data: data})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("事件序列化失败")
		return nil
	}
	return frame
}
