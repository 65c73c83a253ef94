package live

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odditor/internal/models"
	"odditor/internal/poll"
)

func newTestPipeline(t *testing.T) (*Hub, *Pipeline, *models.Poll) {
	t.Helper()
	store := poll.NewStore()
	created, err := store.Create("Alex")
	require.NoError(t, err)
	hub := NewHub(store)
	return hub, NewPipeline(store, hub), created
}

func TestHandleVoteBroadcastsUpdate(t *testing.T) {
	hub, pipeline, created := newTestPipeline(t)
	voter, watcher := NewClient(nil), NewClient(nil)

	require.NoError(t, hub.Join(voter, created.Id))
	require.NoError(t, hub.Join(watcher, created.Id))
	<-voter.send
	<-watcher.send

	pipeline.HandleVote(voter, models.VoteRequest{
		PollId:        created.Id,
		QuestionIndex: 0,
		Choice:        models.ChoiceOdd,
		Comment:       "so true",
		VoterName:     "Sam",
	})

	// 触发者本人也要收到广播，乐观 UI 靠它校准
	for _, c := range []*Client{voter, watcher} {
		var env struct {
			Event string               `json:"event"`
			Data  models.QuestionDelta `json:"data"`
		}
		recvFrame(t, c, &env)
		assert.Equal(t, models.EventUpdate, env.Event)
		assert.Equal(t, 0, env.Data.QuestionIndex)
		assert.Equal(t, 1, env.Data.Votes.Odd)
		assert.Zero(t, env.Data.Votes.Normal)
		require.Len(t, env.Data.Comments.Odd, 1)
		assert.Equal(t, "so true", env.Data.Comments.Odd[0].Text)
		assert.Equal(t, "Sam", env.Data.Comments.Odd[0].Name)
		assert.Positive(t, env.Data.Comments.Odd[0].Id)
	}
}

// 小写短码投票同样命中房间
func TestHandleVoteLowercaseCode(t *testing.T) {
	hub, pipeline, created := newTestPipeline(t)
	c := NewClient(nil)
	require.NoError(t, hub.Join(c, created.Id))
	<-c.send

	pipeline.HandleVote(c, models.VoteRequest{
		PollId:        " " + strings.ToLower(created.Id) + " ",
		QuestionIndex: 1,
		Choice:        models.ChoiceNormal,
	})

	var env models.Envelope
	recvFrame(t, c, &env)
	assert.Equal(t, models.EventUpdate, env.Event)
}

// 失败只回 err 给提交者，房间其他人无感知
func TestHandleVoteFailure(t *testing.T) {
	tests := []struct {
		name string
		vote func(id string) models.VoteRequest
	}{
		{
			name: "非法票型",
			vote: func(id string) models.VoteRequest {
				return models.VoteRequest{PollId: id, QuestionIndex: 0, Choice: "maybe"}
			},
		},
		{
			name: "题号越界",
			vote: func(id string) models.VoteRequest {
				return models.VoteRequest{PollId: id, QuestionIndex: 9999, Choice: models.ChoiceOdd}
			},
		},
		{
			name: "未知投票",
			vote: func(string) models.VoteRequest {
				return models.VoteRequest{PollId: "ZZZZZZ", QuestionIndex: 0, Choice: models.ChoiceOdd}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub, pipeline, created := newTestPipeline(t)
			voter, watcher := NewClient(nil), NewClient(nil)
			require.NoError(t, hub.Join(voter, created.Id))
			require.NoError(t, hub.Join(watcher, created.Id))
			<-voter.send
			<-watcher.send

			pipeline.HandleVote(voter, tt.vote(created.Id))

			var env struct {
				Event string `json:"event"`
				Data  string `json:"data"`
			}
			recvFrame(t, voter, &env)
			assert.Equal(t, models.EventErr, env.Event)
			assert.NotEmpty(t, env.Data)

			assertSilent(t, watcher)
		})
	}
}

// 连续投票的广播顺序与计票顺序一致
func TestHandleVoteBroadcastOrder(t *testing.T) {
	hub, pipeline, created := newTestPipeline(t)
	c := NewClient(nil)
	require.NoError(t, hub.Join(c, created.Id))
	<-c.send

	const n = 10
	for i := 0; i < n; i++ {
		pipeline.HandleVote(c, models.VoteRequest{
			PollId:        created.Id,
			QuestionIndex: 0,
			Choice:        models.ChoiceOdd,
		})
	}

	for i := 1; i <= n; i++ {
		var env struct {
			Event string               `json:"event"`
			Data  models.QuestionDelta `json:"data"`
		}
		recvFrame(t, c, &env)
		assert.Equal(t, i, env.Data.Votes.Odd)
	}
}
