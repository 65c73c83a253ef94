package poll

import "math/rand/v2"

// topicPool 全量话题池，新投票取其全排列
var topicPool = []string{
	// 动物
	"Cats", "Dogs", "Birds", "Spiders", "Fish", "Pigeons", "Bugs",
	// 日常活动
	"Driving", "Parking", "Swimming", "Running", "Cooking", "Cleaning",
	"Napping", "Dancing", "Whistling", "Shopping", "Hiking", "Stretching",
	// 沟通与数码
	"Texting", "Voicemails", "Passwords", "Wi-Fi", "Charging", "Autocorrect",
	"Notifications", "Eye Contact", "Small Talk", "Waving",
	// 吃喝
	"Leftovers", "Condiments", "Ice Cream", "Coffee", "Buffets", "Coupons",
	// 娱乐
	"Spoilers", "Commercials", "Subtitles", "Reality TV", "Sequels",
	// 场景
	"Traffic", "Silence", "Mondays", "Birthdays", "Airports", "Elevators",
	"Darkness", "Mornings", "Rain", "Crowds", "Waiting", "Deadlines",
	"Surprises", "Mirrors", "Clocks", "Receipts",
	// 玄学
	"Superstitions", "Nostalgia", "Fonts", "Tipping", "Directions",
	"Bubble Wrap", "Candles", "Sunsets", "Déjà Vu", "Hugging",
}

// Sample 把 pool 等概率乱序后取前 count 个，不动原切片
func Sample(pool []string, count int) []string {
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
