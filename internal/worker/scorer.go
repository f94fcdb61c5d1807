package worker

import "github.com/vytor/phraseflash/internal/models"

// Scorer compares an attempt with its reference.
// *practice.Engine satisfies it.
type Scorer interface {
	Compare(attempt, reference, lang string) models.CompareResult
}
