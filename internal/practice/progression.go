package practice

import (
	"time"

	"github.com/vytor/phraseflash/internal/models"
	"github.com/vytor/phraseflash/internal/timezone"
)

// MasteryCount is the number of correct answers, on distinct local days,
// after which a phrase is mastered.
const MasteryCount = 5

// Engine evaluates practice attempts. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	aligner *Aligner
}

// Option configures an Engine.
type Option func(*Engine)

// WithCharacterLanguages sets the languages diffed character by character.
func WithCharacterLanguages(langs ...string) Option {
	return func(e *Engine) {
		e.aligner = NewAligner(langs...)
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{aligner: defaultAligner}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aligner returns the diff aligner used by e.
func (e *Engine) Aligner() *Aligner {
	return e.aligner
}

// Submit scores attempt against reference and returns the outcome together
// with the next practice state. A correct answer counts at most once per
// local day (as mapped by localDate) and the count is capped at
// MasteryCount. Every incorrect answer is counted.
func (e *Engine) Submit(state models.PracticeState, attempt, reference, lang string, now time.Time, localDate func(time.Time) timezone.Date) (models.PracticeOutcome, models.PracticeState) {
	similarity := Similarity(attempt, reference)
	correct := IsCorrect(similarity)
	diff := e.aligner.Diff(attempt, reference, lang)

	alreadyPracticedToday := state.LastPracticeDate != nil &&
		localDate(*state.LastPracticeDate) == localDate(now)

	next := state
	if correct && !alreadyPracticedToday {
		next.CorrectCount = min(state.CorrectCount+1, MasteryCount)
		practicedAt := now
		next.LastPracticeDate = &practicedAt
	}
	if !correct {
		next.IncorrectCount = state.IncorrectCount + 1
	}

	return models.PracticeOutcome{
		Correct:         correct,
		Similarity:      similarity,
		Diff:            diff,
		NewCorrectCount: next.CorrectCount,
		IsMastered:      next.CorrectCount >= MasteryCount,
	}, next
}

// Submit runs the default Engine.
func Submit(state models.PracticeState, attempt, reference, lang string, now time.Time, localDate func(time.Time) timezone.Date) (models.PracticeOutcome, models.PracticeState) {
	return defaultEngine.Submit(state, attempt, reference, lang, now, localDate)
}

var defaultEngine = NewEngine()

// Compare scores attempt against reference without touching any practice
// state.
func (e *Engine) Compare(attempt, reference, lang string) models.CompareResult {
	similarity := Similarity(attempt, reference)
	return models.CompareResult{
		Similarity:  similarity,
		Correct:     IsCorrect(similarity),
		Granularity: e.aligner.Granularity(lang).String(),
		Diff:        e.aligner.Diff(attempt, reference, lang),
	}
}
