package models

import "time"

type DiffType string

const (
	DiffEqual  DiffType = "equal"
	DiffInsert DiffType = "insert"
	DiffDelete DiffType = "delete"
)

type DiffSpan struct {
	Type  DiffType `json:"type"`
	Value string   `json:"value"`
}

type PracticeOutcome struct {
	Correct         bool       `json:"correct"`
	Similarity      float64    `json:"similarity"`
	Diff            []DiffSpan `json:"diffResult"`
	NewCorrectCount int        `json:"newCorrectCount"`
	IsMastered      bool       `json:"isMastered"`
}

type PracticeMode string

const (
	PracticeModeNormal PracticeMode = "normal" // not yet mastered
	PracticeModeReview PracticeMode = "review" // mastered
)

// Valid reports whether m is one of the known practice modes.
func (m PracticeMode) Valid() bool {
	return m == PracticeModeNormal || m == PracticeModeReview
}

type PracticeLog struct {
	ID           int64     `json:"id"`
	PhraseID     int64     `json:"phrase_id"`
	UserID       int64     `json:"user_id"`
	Correct      bool      `json:"correct"`
	Similarity   float64   `json:"similarity"`
	Transcript   string    `json:"transcript"`
	PracticeDate time.Time `json:"practice_date"`
}

// PracticeFilter selects phrases eligible for a practice session.
type PracticeFilter struct {
	UserID        int64
	LanguageID    int64
	Mode          PracticeMode
	MasteryCount  int
	CreatedAfter  *time.Time
	ExcludeSpeech bool
}

type PracticeQuery struct {
	LanguageID    int64
	Mode          PracticeMode
	QuestionCount *int // nil means the default session size, 0 means all
}

type PracticePhrase struct {
	ID                   int64     `json:"id"`
	Original             string    `json:"original"`
	Translation          string    `json:"translation"`
	PracticeCorrectCount int       `json:"practiceCorrectCount"`
	CreatedAt            time.Time `json:"createdAt"`
}

type PracticeSession struct {
	Phrases    []PracticePhrase `json:"phrases"`
	TotalCount int              `json:"totalCount"`
}

type AnswerRequest struct {
	PhraseID   int64        `json:"phraseId"`
	Transcript *string      `json:"transcript"`
	Mode       PracticeMode `json:"mode"`
}

type AnswerResult struct {
	PracticeOutcome
	ExpectedText string `json:"expectedText"`
}

// CompareRequest is a stateless scoring request.
type CompareRequest struct {
	Attempt   string `json:"attempt"`
	Reference string `json:"reference"`
	Lang      string `json:"lang"`
}

type CompareResult struct {
	Similarity  float64    `json:"similarity"`
	Correct     bool       `json:"correct"`
	Granularity string     `json:"granularity"`
	Diff        []DiffSpan `json:"diffResult"`
}
