package models

import "time"

type Phrase struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	LanguageID   int64      `json:"language_id"`
	LanguageCode string     `json:"language_code"`
	Original     string     `json:"original"`
	Translation  string     `json:"translation"`
	SpeechID     *int64     `json:"speech_id"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
	PracticeState
}

// PracticeState is the per-phrase snapshot the practice engine reads and
// returns. The engine never mutates a snapshot in place.
type PracticeState struct {
	CorrectCount     int        `json:"practice_correct_count"`
	IncorrectCount   int        `json:"practice_incorrect_count"`
	LastPracticeDate *time.Time `json:"last_practice_date"`
}

type Language struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type User struct {
	ID                      int64      `json:"id"`
	Username                string     `json:"username"`
	Timezone                string     `json:"timezone"`
	PracticeIncludeExisting bool       `json:"practice_include_existing"`
	PracticeStartDate       *time.Time `json:"practice_start_date"`
	CreatedAt               time.Time  `json:"created_at"`
}
