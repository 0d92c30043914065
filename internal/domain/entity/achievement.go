package entity

// AchievementTier is a fixed message-count milestone on a user profile.
type AchievementTier struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int64  `json:"count"`
}

// MessageAchievementTiers are awarded once the sender's total message count
// reaches each threshold. Awarding is idempotent.
var MessageAchievementTiers = []AchievementTier{
	{ID: "MSG_10", Title: "Newcomer", Count: 10},
	{ID: "MSG_100", Title: "Regular", Count: 100},
	{ID: "MSG_1000", Title: "Conversation Master", Count: 1000},
	{ID: "MSG_10000", Title: "PingMe Legend", Count: 10000},
}
