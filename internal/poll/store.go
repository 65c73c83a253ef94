package poll

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v4"

	"odditor/internal/models"
)

const (
	maxCommentLen = 200
	maxNameLen    = 30
	defaultVoter  = "Anonymous"
)

// record 一场投票和它的写锁，同场串行、异场并行
type record struct {
	mu   sync.Mutex
	poll models.Poll
}

// Store 全部在线投票的唯一权威，纯内存，进程退出即清空
type Store struct {
	polls *xsync.Map[string, *record]
}

func NewStore() *Store {
	return &Store{polls: xsync.NewMap[string, *record]()}
}

// Create 开一场新投票：唯一短码 + 乱序全量话题，计票清零
func (s *Store) Create(ownerName string) (*models.Poll, error) {
	name := strings.TrimSpace(ownerName)
	if name == "" {
		return nil, errors.WithStack(ErrInvalidInput)
	}
	name = truncate(name, maxNameLen)

	questions := make([]models.Question, 0, len(topicPool))
	for _, text := range Sample(topicPool, len(topicPool)) {
		questions = append(questions, models.Question{
			Text: text,
			Comments: models.CommentBuckets{
				Normal: []models.Comment{},
				Odd:    []models.Comment{},
			},
		})
	}

	for {
		code := NewCode()
		rec := &record{poll: models.Poll{
			Id:        code,
			OwnerName: name,
			Questions: questions,
			CreatedAt: time.Now().UnixMilli(),
		}}
		if _, loaded := s.polls.LoadOrStore(code, rec); loaded {
			// 撞码，换一个再来
			continue
		}

		rec.mu.Lock()
		snap := clonePoll(&rec.poll)
		rec.mu.Unlock()
		return snap, nil
	}
}

// Get 按短码取全量快照，大小写不敏感，快照与库内数据不共享内存
func (s *Store) Get(id string) (*models.Poll, error) {
	rec, ok := s.polls.Load(NormalizeCode(id))
	if !ok {
		return nil, errors.WithStack(ErrNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return clonePoll(&rec.poll), nil
}

// RecordVote 原子计票，附言可选。commit 在持锁期间回调，
// 因此同一题的广播顺序与计票顺序一致
func (s *Store) RecordVote(vote models.VoteRequest, commit func(models.QuestionDelta)) error {
	if !vote.Choice.Valid() {
		return errors.WithStack(ErrInvalidChoice)
	}

	rec, ok := s.polls.Load(NormalizeCode(vote.PollId))
	if !ok {
		return errors.WithStack(ErrNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if vote.QuestionIndex < 0 || vote.QuestionIndex >= len(rec.poll.Questions) {
		return errors.WithStack(ErrNotFound)
	}
	q := &rec.poll.Questions[vote.QuestionIndex]

	switch vote.Choice {
	case models.ChoiceNormal:
		q.Votes.Normal++
	case models.ChoiceOdd:
		q.Votes.Odd++
	}

	if text := strings.TrimSpace(vote.Comment); text != "" {
		name := strings.TrimSpace(vote.VoterName)
		if name == "" {
			name = defaultVoter
		}
		comment := models.Comment{
			Text: truncate(text, maxCommentLen),
			Name: truncate(name, maxNameLen),
			Id:   time.Now().UnixMilli(),
		}
		if vote.Choice == models.ChoiceNormal {
			q.Comments.Normal = append(q.Comments.Normal, comment)
		} else {
			q.Comments.Odd = append(q.Comments.Odd, comment)
		}
	}

	if commit != nil {
		commit(models.QuestionDelta{
			QuestionIndex: vote.QuestionIndex,
			Votes:         q.Votes,
			Comments:      cloneBuckets(q.Comments),
		})
	}
	return nil
}

// Has 短码是否在线。投票没有过期与删除，结果不会失效
func (s *Store) Has(id string) bool {
	_, ok := s.polls.Load(NormalizeCode(id))
	return ok
}

// Snapshot 在持锁期间把全量快照交给 deliver，
// 与 RecordVote 的 commit 走同一把锁，入房快照因此不会被旧广播覆盖
func (s *Store) Snapshot(id string, deliver func(*models.Poll)) error {
	rec, ok := s.polls.Load(NormalizeCode(id))
	if !ok {
		return errors.WithStack(ErrNotFound)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	deliver(clonePoll(&rec.poll))
	return nil
}

// Count 在线投票场数
func (s *Store) Count() int {
	return s.polls.Size()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func clonePoll(p *models.Poll) *models.Poll {
	out := *p
	out.Questions = make([]models.Question, len(p.Questions))
	for i, q := range p.Questions {
		out.Questions[i] = q
		out.Questions[i].Comments = cloneBuckets(q.Comments)
	}
	return &out
}

func cloneBuckets(b models.CommentBuckets) models.CommentBuckets {
	return models.CommentBuckets{
		Normal: append([]models.Comment{}, b.Normal...),
		Odd:    append([]models.Comment{}, b.Odd...),
	}
}
