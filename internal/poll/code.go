package poll

import (
	"math/rand/v2"
	"strings"

	strconv2 "github.com/savsgio/gotils/strconv"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLen      = 6
)

// NewCode 生成 6 位大写短码，纯随机无状态，撞码由 Store 重试兜底
func NewCode() string {
	buf := make([]byte, codeLen)
	for i := range buf {
		buf[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return strconv2.B2S(buf)
}

// NormalizeCode 短码统一成大写，查表与广播都按这个键
func NormalizeCode(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
