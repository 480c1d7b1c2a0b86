// Package batch fans a collection of props out across a bounded worker
// pool and aggregates the grades into a run summary. Grading itself is
// pure and share-nothing, so the fan-out needs no locking: each worker
// pulls jobs from a channel and posts index-tagged results back.
package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/metrics"
	"github.com/oddsmith/propscore/pkg/models"
)

const defaultWorkers = 10

// Grader is the slice of the scoring engine the processor needs. The
// engine satisfies it; tests may substitute their own.
type Grader interface {
	ApplyScoringLogic(prop *models.Prop, snapshot *config.Snapshot) *models.GradedProp
}

// Processor runs batches of props through a grader in parallel.
type Processor struct {
	grader  Grader
	workers int
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// NewProcessor creates a processor with the given worker count. A count
// of zero or less falls back to the default pool size.
func NewProcessor(grader Grader, workers int, log zerolog.Logger, recorder *metrics.Recorder) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Processor{
		grader:  grader,
		workers: workers,
		log:     log.With().Str("component", "batch_processor").Logger(),
		metrics: recorder,
	}
}

// ScoreBatch grades every prop in the slice and returns the grades in
// input order alongside the run summary. Props that fail structural
// validation become per-item failures (a nil slot in the grades slice);
// they never abort the run. Cancelling the context abandons the run and
// returns the context's error.
func (p *Processor) ScoreBatch(ctx context.Context, props []*models.Prop, snapshot *config.Snapshot) ([]*models.GradedProp, *models.BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	runID := uuid.NewString()
	total := len(props)

	result := &models.BatchResult{
		RunID:            runID,
		Total:            total,
		TierDistribution: make(map[models.Tier]int),
	}
	if total == 0 {
		return []*models.GradedProp{}, result, nil
	}

	jobs := make(chan jobItem, total)
	results := make(chan resultItem, total)

	workers := p.workers
	if total < workers {
		workers = total
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, snapshot, jobs, results)
		}()
	}

	for idx, prop := range props {
		jobs <- jobItem{index: idx, prop: prop}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	grades := make([]*models.GradedProp, total)
	for item := range results {
		if item.err != nil {
			result.Failures = append(result.Failures, models.ItemFailure{
				Index:  item.index,
				PropID: propID(props[item.index]),
				Err:    item.err.Error(),
			})
			continue
		}
		grades[item.index] = item.graded
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("batch %s abandoned: %w", runID, err)
	}

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Index < result.Failures[j].Index
	})

	composites := make([]float64, 0, total)
	for _, graded := range grades {
		if graded == nil {
			continue
		}
		result.TierDistribution[graded.Tier]++
		composites = append(composites, graded.CompositeScore)
	}
	result.Graded = len(composites)
	result.Failed = len(result.Failures)
	if len(composites) > 0 {
		result.Averages.Composite = stat.Mean(composites, nil)
	}

	p.metrics.BatchRun(total, result.Failed)
	p.log.Info().
		Str("run_id", runID).
		Int("total", total).
		Int("graded", result.Graded).
		Int("failed", result.Failed).
		Float64("mean_composite", result.Averages.Composite).
		Dur("elapsed", time.Since(start)).
		Msg("batch scored")

	return grades, result, nil
}

type jobItem struct {
	index int
	prop  *models.Prop
}

type resultItem struct {
	index  int
	graded *models.GradedProp
	err    error
}

func (p *Processor) worker(ctx context.Context, snapshot *config.Snapshot, jobs <-chan jobItem, results chan<- resultItem) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- resultItem{index: job.index, err: err}
			continue
		}
		if err := job.prop.Validate(); err != nil {
			results <- resultItem{index: job.index, err: err}
			continue
		}
		results <- resultItem{index: job.index, graded: p.grader.ApplyScoringLogic(job.prop, snapshot)}
	}
}

func propID(prop *models.Prop) string {
	if prop == nil {
		return ""
	}
	return prop.ID
}
