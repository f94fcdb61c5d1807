package models

type PracticeStats struct {
	DailyCorrectCount int `json:"dailyCorrectCount"`
	TotalCorrectCount int `json:"totalCorrectCount"`
	WeeklyRank        int `json:"weeklyRank"`
	TotalRank         int `json:"totalRank"`
}

// UserCount is a per-user tally used for rankings.
type UserCount struct {
	UserID int64
	Count  int
}
