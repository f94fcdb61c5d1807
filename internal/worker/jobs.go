package worker

import (
	"context"
	"fmt"

	"github.com/vytor/phraseflash/internal/logger"
	"github.com/vytor/phraseflash/internal/models"
)

// ScoreJob scores one comparison and writes the result to Results[Index].
// Jobs sharing a Results slice must use distinct indexes.
type ScoreJob struct {
	Scorer  Scorer
	Index   int
	Request models.CompareRequest
	Results []models.CompareResult
}

func (j *ScoreJob) Name() string { return fmt.Sprintf("score_%d", j.Index) }

func (j *ScoreJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := j.Request
	j.Results[j.Index] = j.Scorer.Compare(r.Attempt, r.Reference, r.Lang)
	logger.FromContext(ctx).Debug("similarity=%.3f", j.Results[j.Index].Similarity)
	return nil
}

// ScoreAll scores every request on a pool of workers and returns the results
// in request order.
func ScoreAll(ctx context.Context, scorer Scorer, requests []models.CompareRequest, workers int) ([]models.CompareResult, error) {
	results := make([]models.CompareResult, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	pool := NewPool(workers, len(requests))
	pool.Start(ctx)
	for i, req := range requests {
		if err := pool.Submit(&ScoreJob{Scorer: scorer, Index: i, Request: req, Results: results}); err != nil {
			pool.Stop()
			return nil, err
		}
	}
	pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
