package live

import (
	"github.com/rs/zerolog/log"

	"odditor/internal/models"
	"odditor/internal/poll"
)

// Pipeline 投票流水线：校验入库，再把单题全量推给整个房间
type Pipeline struct {
	store *poll.Store
	hub   *Hub
}

func NewPipeline(store *poll.Store, hub *Hub) *Pipeline {
	return &Pipeline{store: store, hub: hub}
}

// HandleVote 处理一次投票意图。失败只回 err 给提交者，房间无感知
func (p *Pipeline) HandleVote(c *Client, vote models.VoteRequest) {
	code := poll.NormalizeCode(vote.PollId)
	err := p.store.RecordVote(vote, func(delta models.QuestionDelta) {
		p.hub.Broadcast(code, models.EventUpdate, delta)
	})
	if err != nil {
		log.Debug().Err(err).Str("poll", code).Int("question", vote.QuestionIndex).Msg("投票被拒")
		c.Send(models.EventErr, err.Error())
	}
}
