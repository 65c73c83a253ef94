package models

type Choice string

const (
	// ChoiceNormal 正常票
	ChoiceNormal Choice = "normal"
	// ChoiceOdd 奇怪票
	ChoiceOdd Choice = "odd"
)

// Valid 是否为合法票型
func (c Choice) Valid() bool {
	return c == ChoiceNormal || c == ChoiceOdd
}
