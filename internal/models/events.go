package models

import "github.com/goccy/go-json"

// 实时通道事件名
const (
	EventJoin   = "join"
	EventVote   = "vote"
	EventPoll   = "poll"
	EventUpdate = "update"
	EventErr    = "err"
)

// Envelope 出站事件统一包装
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Inbound 入站事件，载荷按事件名延迟解析
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinRequest join 事件载荷
type JoinRequest struct {
	PollId string `json:"pollId"`
}

// VoteRequest vote 事件载荷
type VoteRequest struct {
	PollId        string `json:"pollId"`
	QuestionIndex int    `json:"questionIndex"`
	Choice        Choice `json:"choice"`
	Comment       string `json:"comment"`
	VoterName     string `json:"voterName"`
}

type CreateRequest struct {
	Name string `json:"name"`
}

type CreateResponse struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
