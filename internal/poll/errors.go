package poll

import "github.com/pkg/errors"

var (
	// ErrInvalidInput 必填字段为空
	ErrInvalidInput = errors.New("name is required")
	// ErrNotFound 投票或议题不存在
	ErrNotFound = errors.New("poll not found")
	// ErrInvalidChoice 票型不在 normal / odd 之内
	ErrInvalidChoice = errors.New("invalid choice")
)
