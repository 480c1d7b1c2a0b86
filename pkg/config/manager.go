package config

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oddsmith/propscore/pkg/metrics"
	"github.com/oddsmith/propscore/pkg/schedule"
)

const defaultRefreshSpec = "@every 5m"

// ManagerOptions configures a Manager. Only Logger is required; a Manager
// with neither Store nor FilePath serves the built-in defaults.
type ManagerOptions struct {
	Store       Store      // external persistent store (point reads)
	Feed        ChangeFeed // change-notification subscription
	FilePath    string     // YAML document, used when no store row exists
	CachePath   string     // last-known-good cache location
	RefreshSpec string     // cron spec, default "@every 5m"
	Logger      zerolog.Logger
	Metrics     *metrics.Recorder
}

// Manager owns the active configuration snapshot. It loads one at startup
// (failing fast when nothing is obtainable), refreshes it on a schedule
// and on change notices, and keeps serving the last-known-good snapshot
// when a refresh fails. Readers always get one complete immutable
// snapshot, never a partial update.
type Manager struct {
	opts  ManagerOptions
	log   zerolog.Logger
	sched *schedule.Scheduler

	mu        sync.RWMutex
	current   *Snapshot
	lastStamp time.Time // store updated_at of the active snapshot

	cancelFeed context.CancelFunc
}

// NewManager creates a manager; call Start before scoring
func NewManager(opts ManagerOptions) *Manager {
	return &Manager{
		opts: opts,
		log:  opts.Logger.With().Str("component", "config_manager").Logger(),
	}
}

// Start obtains the initial snapshot and begins the refresh schedule and
// feed watch. If no snapshot can be obtained from any source, Start
// returns an error and scoring must not begin.
func (m *Manager) Start(ctx context.Context) error {
	snap, stamp, err := m.loadInitial(ctx)
	if err != nil {
		return fmt.Errorf("config manager startup: %w", err)
	}
	m.setCurrent(snap, stamp)
	m.log.Info().Str("source", snap.Source).Msg("Initial scoring config loaded")

	spec := m.opts.RefreshSpec
	if spec == "" {
		spec = defaultRefreshSpec
	}
	m.sched = schedule.New(m.log)
	if err := m.sched.AddJob(spec, &refreshJob{m: m}); err != nil {
		return fmt.Errorf("failed to register refresh job: %w", err)
	}
	m.sched.Start()

	if m.opts.Feed != nil {
		feedCtx, cancel := context.WithCancel(context.Background())
		m.cancelFeed = cancel
		notices, err := m.opts.Feed.Subscribe(feedCtx)
		if err != nil {
			// The timer still refreshes; a dead feed only delays updates.
			m.log.Error().Err(err).Msg("Change feed unavailable, continuing with timer refresh only")
		} else {
			go m.watchFeed(feedCtx, notices)
		}
	}

	return nil
}

// Stop halts the refresh schedule and the feed watch
func (m *Manager) Stop() {
	if m.cancelFeed != nil {
		m.cancelFeed()
	}
	if m.opts.Feed != nil {
		_ = m.opts.Feed.Close()
	}
	if m.sched != nil {
		m.sched.Stop()
	}
}

// Current returns the active snapshot. A manager that was never started
// serves the built-in defaults so a misordered caller degrades instead of
// dereferencing nil.
func (m *Manager) Current() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return DefaultSnapshot()
	}
	return m.current
}

// Refresh re-reads the configuration source and swaps the snapshot on
// success. On failure the current snapshot stays in service.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.opts.Store == nil {
		if m.opts.FilePath == "" {
			return nil // defaults never change
		}
		cfg, err := Load(m.opts.FilePath)
		if err != nil {
			m.opts.Metrics.ConfigRefresh("failure")
			m.log.Warn().Err(err).Msg("Config file refresh failed, keeping last-known-good")
			return err
		}
		m.setCurrent(NewSnapshot(cfg, "file"), time.Time{})
		m.opts.Metrics.ConfigRefresh("success")
		return nil
	}

	raw, updatedAt, err := m.opts.Store.ReadCurrent(ctx)
	if errors.Is(err, ErrNoConfig) {
		// Row deleted out from under us: keep serving what we have.
		m.opts.Metrics.ConfigRefresh("unchanged")
		return nil
	}
	if err != nil {
		m.opts.Metrics.ConfigRefresh("failure")
		m.log.Warn().Err(err).Msg("Config store read failed, keeping last-known-good")
		return err
	}

	m.mu.RLock()
	unchanged := !m.lastStamp.IsZero() && updatedAt.Equal(m.lastStamp)
	m.mu.RUnlock()
	if unchanged {
		m.opts.Metrics.ConfigRefresh("unchanged")
		return nil
	}

	cfg, err := Parse(raw)
	if err != nil {
		m.opts.Metrics.ConfigRefresh("failure")
		m.log.Error().Err(err).Msg("Stored scoring config is invalid, keeping last-known-good")
		return err
	}

	m.setCurrent(NewSnapshot(cfg, "store"), updatedAt)
	m.saveCache(cfg, "store")
	m.opts.Metrics.ConfigRefresh("success")
	m.log.Info().Time("updated_at", updatedAt).Msg("Scoring config refreshed")
	return nil
}

// loadInitial works through the sources in order: store, file, cache,
// defaults. Only an unreachable store with no usable fallback is fatal.
func (m *Manager) loadInitial(ctx context.Context) (*Snapshot, time.Time, error) {
	if m.opts.Store == nil {
		if m.opts.FilePath != "" {
			cfg, err := Load(m.opts.FilePath)
			if err != nil {
				return nil, time.Time{}, err
			}
			return NewSnapshot(cfg, "file"), time.Time{}, nil
		}
		return DefaultSnapshot(), time.Time{}, nil
	}

	readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, updatedAt, err := m.opts.Store.ReadCurrent(readCtx)
	switch {
	case err == nil:
		cfg, perr := Parse(raw)
		if perr == nil {
			m.saveCache(cfg, "store")
			return NewSnapshot(cfg, "store"), updatedAt, nil
		}
		m.log.Error().Err(perr).Msg("Stored scoring config is invalid")
		return m.fallbackInitial(perr)

	case errors.Is(err, ErrNoConfig):
		// An empty store is a state, not a failure: serve the file when
		// one is configured, otherwise the built-in defaults.
		if m.opts.FilePath != "" {
			cfg, ferr := Load(m.opts.FilePath)
			if ferr != nil {
				return nil, time.Time{}, ferr
			}
			return NewSnapshot(cfg, "file"), time.Time{}, nil
		}
		return DefaultSnapshot(), time.Time{}, nil

	default:
		m.log.Error().Err(err).Msg("Config store unreachable at startup")
		return m.fallbackInitial(err)
	}
}

// fallbackInitial tries the last-known-good cache, then the file; with
// neither available the original error propagates and startup fails.
func (m *Manager) fallbackInitial(cause error) (*Snapshot, time.Time, error) {
	if m.opts.CachePath != "" {
		cfg, savedAt, err := LoadCache(m.opts.CachePath)
		if err == nil {
			m.log.Warn().Time("saved_at", savedAt).Msg("Serving last-known-good scoring config from cache")
			return NewSnapshot(cfg, "cache"), time.Time{}, nil
		}
		m.log.Warn().Err(err).Msg("Config cache unusable")
	}
	if m.opts.FilePath != "" {
		cfg, err := Load(m.opts.FilePath)
		if err == nil {
			return NewSnapshot(cfg, "file"), time.Time{}, nil
		}
		m.log.Warn().Err(err).Msg("Config file unusable")
	}
	return nil, time.Time{}, cause
}

func (m *Manager) setCurrent(snap *Snapshot, stamp time.Time) {
	m.mu.Lock()
	m.current = snap
	m.lastStamp = stamp
	m.mu.Unlock()
}

func (m *Manager) saveCache(cfg *ScoringConfig, source string) {
	if m.opts.CachePath == "" {
		return
	}
	if err := SaveCache(m.opts.CachePath, cfg, source); err != nil {
		m.log.Warn().Err(err).Msg("Failed to write config cache")
	}
}

func (m *Manager) watchFeed(ctx context.Context, notices <-chan Notice) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-notices:
			if !ok {
				return
			}
			m.log.Debug().Str("payload", n.Payload).Msg("Refreshing on change notice")
			refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := m.Refresh(refreshCtx); err != nil {
				m.log.Warn().Err(err).Msg("Notice-triggered refresh failed")
			}
			cancel()
		}
	}
}

// refreshJob adapts Manager.Refresh to the scheduler's Job interface
type refreshJob struct {
	m *Manager
}

func (j *refreshJob) Name() string { return "config_refresh" }

func (j *refreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return j.m.Refresh(ctx)
}
