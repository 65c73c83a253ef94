package models

// Poll 一场投票，议题顺序在创建时定死
type Poll struct {
	// 6 位大写短码，进程内唯一
	Id string `json:"id"`
	// 发起人外显名称
	OwnerName string `json:"ownerName"`
	// 全量议题，顺序不变
	Questions []Question `json:"questions"`
	// 创建时间，毫秒时间戳，仅作展示
	CreatedAt int64 `json:"createdAt"`
}

// Question 单个议题，normal / odd 两个互斥票仓
type Question struct {
	Text     string         `json:"text"`
	Votes    VoteCount      `json:"votes"`
	Comments CommentBuckets `json:"comments"`
}

type VoteCount struct {
	Normal int `json:"normal"`
	Odd    int `json:"odd"`
}

// CommentBuckets 按票型分桶的附言，互相独立
type CommentBuckets struct {
	Normal []Comment `json:"normal"`
	Odd    []Comment `json:"odd"`
}

// Comment 投票附言，只增不改
type Comment struct {
	Text string `json:"text"`
	Name string `json:"name"`
	// 前端列表 key，毫秒时间戳足够
	Id int64 `json:"id"`
}

// QuestionDelta 单题最新计票与附言，投票后整体重推
type QuestionDelta struct {
	QuestionIndex int            `json:"questionIndex"`
	Votes         VoteCount      `json:"votes"`
	Comments      CommentBuckets `json:"comments"`
}
