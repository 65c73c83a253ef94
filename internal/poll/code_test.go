package poll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCodePattern(t *testing.T) {
	for i := 0; i < 1000; i++ {
		assert.Regexp(t, `^[A-Z0-9]{6}$`, NewCode())
	}
}

// 纯随机短码，1000 次里撞码应当极其罕见
func TestNewCodeSpread(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[NewCode()] = struct{}{}
	}
	assert.GreaterOrEqual(t, len(seen), 999)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC123"},
		{"  7f3k9a ", "7F3K9A"},
		{"7F3K9A", "7F3K9A"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCode(tt.in))
	}
}
