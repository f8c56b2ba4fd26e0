package providers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tripweaver/layover-engine/internal/models"
	"github.com/tripweaver/layover-engine/internal/ratelimit"
)

type FetcherConfig struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.SourceLimiter
}

// Fetcher fans a discovery request out to every candidate source in
// parallel, retries transient failures, and merges the results.
// Sources are merged in their configured order regardless of which
// goroutine finishes first, so first-seen-wins stays reproducible.
type Fetcher struct {
	sources []Source
	config  FetcherConfig
}

// Result separates "real but empty" from "degraded": FailedSources
// names every source whose data is missing from the merge.
type Result struct {
	Candidates       []models.Candidate
	TotalFetched     int
	SourcesQueried   int
	SourcesSucceeded int
	SourcesFailed    int
	FailedSources    []string
}

func NewFetcher(sources []Source, config FetcherConfig) *Fetcher {
	return &Fetcher{
		sources: sources,
		config:  config,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, origin string, date time.Time, prefs models.Preferences) *Result {
	fetchCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	result := &Result{
		SourcesQueried: len(f.sources),
	}

	perSource := make([][]models.Candidate, len(f.sources))
	errs := make([]error, len(f.sources))

	var wg sync.WaitGroup
	for i, src := range f.sources {
		wg.Add(1)
		go func(i int, source Source) {
			defer wg.Done()

			if f.config.RateLimiter != nil {
				if err := f.config.RateLimiter.Wait(fetchCtx, source.Name()); err != nil {
					errs[i] = NewProviderError(source.Name(), err)
					return
				}
			}

			candidates, err := f.fetchWithRetry(fetchCtx, source, origin, date, prefs)
			perSource[i] = candidates
			errs[i] = err
		}(i, src)
	}
	wg.Wait()

	set := NewCandidateSet()
	for i, src := range f.sources {
		if errs[i] != nil {
			log.Printf("Source %s failed: %v", src.Name(), errs[i])
			result.SourcesFailed++
			result.FailedSources = append(result.FailedSources, src.Name())
			continue
		}
		result.SourcesSucceeded++
		result.TotalFetched += len(perSource[i])
		set.AddAll(perSource[i])
	}

	result.Candidates = set.Items()
	return result
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, source Source, origin string, date time.Time, prefs models.Preferences) ([]models.Candidate, error) {
	var lastErr error

	for attempt := 0; attempt <= f.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(f.config.RetryDelays) {
				delayIdx = len(f.config.RetryDelays) - 1
			}
			delay := f.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		candidates, err := source.FetchCandidates(ctx, origin, date, prefs)
		if err == nil {
			return candidates, nil
		}

		lastErr = err
		log.Printf("Source %s attempt %d failed: %v", source.Name(), attempt+1, err)
	}

	return nil, lastErr
}
