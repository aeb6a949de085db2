package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/blockedby/jobboard/internal/logger"
	"github.com/blockedby/jobboard/internal/models"
)

// JobsKey is the cache key of the full, ordered job list.
const JobsKey = "jobboard:jobs:all"

// JobSource loads the full ordered job list.
type JobSource interface {
	ListAll(ctx context.Context) ([]models.Job, error)
}

// JobProvider serves the job list the search runs over.
//
// The list is read through the store when one is configured. When the source
// fails, the last list loaded successfully is served instead, so a failed
// refresh never discards data that was already shown.
//
// A load that started before an Invalidate never writes its result to the
// store: every Invalidate bumps a generation, and the write is skipped when
// the generation moved while the source was read.
type JobProvider struct {
	source JobSource
	store  Store
	ttl    time.Duration
	log    *logger.Logger

	mu   sync.RWMutex
	last []models.Job

	genMu sync.Mutex
	gen   uint64
}

// NewJobProvider creates a provider. store may be nil to disable caching.
func NewJobProvider(source JobSource, store Store, ttl time.Duration, log *logger.Logger) *JobProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &JobProvider{
		source: source,
		store:  store,
		ttl:    ttl,
		log:    log.Component("job_provider"),
	}
}

// Jobs returns the full job list in source order.
func (p *JobProvider) Jobs(ctx context.Context) ([]models.Job, error) {
	if jobs, ok := p.fromStore(ctx); ok {
		p.remember(jobs)
		return jobs, nil
	}

	gen := p.generation()
	jobs, err := p.source.ListAll(ctx)
	if err != nil {
		if last := p.lastKnown(); last != nil {
			p.log.Warn().Err(err).Int("jobs", len(last)).Msg("job source failed, serving last known list")
			return last, nil
		}
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	p.remember(jobs)
	p.toStore(ctx, jobs, gen)
	return slices.Clone(jobs), nil
}

// Invalidate drops the cached list so the next call reloads from the source.
func (p *JobProvider) Invalidate(ctx context.Context) error {
	p.genMu.Lock()
	p.gen++
	p.genMu.Unlock()

	if p.store == nil {
		return nil
	}
	if err := p.store.Delete(ctx, JobsKey); err != nil {
		return fmt.Errorf("invalidate jobs cache: %w", err)
	}
	return nil
}

func (p *JobProvider) fromStore(ctx context.Context) ([]models.Job, bool) {
	if p.store == nil {
		return nil, false
	}

	data, err := p.store.Get(ctx, JobsKey)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			p.log.Warn().Err(err).Msg("jobs cache read failed")
		}
		return nil, false
	}

	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		p.log.Warn().Err(err).Msg("jobs cache entry is corrupt, reloading")
		return nil, false
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, true
}

func (p *JobProvider) generation() uint64 {
	p.genMu.Lock()
	defer p.genMu.Unlock()
	return p.gen
}

// toStore holds genMu across the write so an Invalidate either waits for it
// and deletes the entry afterwards, or lands first and the write is skipped.
func (p *JobProvider) toStore(ctx context.Context, jobs []models.Job, gen uint64) {
	if p.store == nil {
		return
	}

	data, err := json.Marshal(jobs)
	if err != nil {
		p.log.Warn().Err(err).Msg("encode jobs for cache")
		return
	}

	p.genMu.Lock()
	defer p.genMu.Unlock()
	if p.gen != gen {
		p.log.Debug().Msg("jobs cache invalidated during load, skipping write")
		return
	}
	if err := p.store.Set(ctx, JobsKey, data, p.ttl); err != nil {
		p.log.Warn().Err(err).Msg("jobs cache write failed")
	}
}

func (p *JobProvider) remember(jobs []models.Job) {
	p.mu.Lock()
	p.last = slices.Clone(jobs)
	p.mu.Unlock()
}

func (p *JobProvider) lastKnown() []models.Job {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.last == nil {
		return nil
	}
	return slices.Clone(p.last)
}
