package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/JonMunkholm/csvview/internal/logging"
)

// DefaultIngestTimeout bounds a single parse when ServiceConfig.IngestTimeout is unset.
const DefaultIngestTimeout = 2 * time.Minute

// ServiceConfig holds the settings the service needs from the application config.
type ServiceConfig struct {
	IngestTimeout   time.Duration // bound on one parse (default: 2m)
	MaxConcurrent   int           // concurrent parses (default: 5)
	MaxWaitTime     time.Duration // wait for a parse slot (default: 30s)
	SessionTTL      time.Duration // idle session lifetime (0: never expire)
	MaxSessions     int           // live session cap (0: unbounded)
	CleanupInterval time.Duration // janitor period (default: 10m)
	View            ViewOptions
}

// Service ties sessions to ingestion: it owns the session store, the
// ingestion limiter and the sample source.
type Service struct {
	cfg     ServiceConfig
	store   *SessionStore
	limiter *UploadLimiter
	sample  SampleSource
}

// NewService creates a Service. sample may be nil, in which case LoadSample
// fails with a FetchError.
func NewService(cfg ServiceConfig, sample SampleSource) *Service {
	if cfg.IngestTimeout <= 0 {
		cfg.IngestTimeout = DefaultIngestTimeout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 10 * time.Minute
	}
	if cfg.View == (ViewOptions{}) {
		cfg.View = DefaultViewOptions()
	}
	return &Service{
		cfg:     cfg,
		store:   NewSessionStore(cfg.SessionTTL, cfg.MaxSessions, cfg.View),
		limiter: NewUploadLimiter(cfg.MaxConcurrent, cfg.MaxWaitTime),
		sample:  sample,
	}
}

// Sessions returns the session store.
func (s *Service) Sessions() *SessionStore {
	return s.store
}

// IngestUpload parses an uploaded file into sess. The file name is checked
// before anything is read; a rejected name clears the session's dataset.
// The returned error is also recorded on the session.
func (s *Service) IngestUpload(ctx context.Context, sess *Session, fileName string, size int64, r io.Reader) error {
	if err := CheckFileName(fileName); err != nil {
		sess.Fail(err)
		return err
	}
	src := SourceInfo{FileName: fileName, Size: size}
	return s.run(ctx, sess, src, func(ctx context.Context) (*Dataset, error) {
		return ParseCSV(ctx, r, src)
	})
}

// LoadSample fetches and parses the sample dataset into sess.
func (s *Service) LoadSample(ctx context.Context, sess *Session) error {
	return s.run(ctx, sess, SourceInfo{FileName: SampleFileName, Sample: true}, func(ctx context.Context) (*Dataset, error) {
		if s.sample == nil {
			return nil, &FetchError{Source: SampleFileName, Err: fmt.Errorf("no sample source configured")}
		}
		rc, info, err := s.sample.Open(ctx)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		ds, err := ParseCSV(ctx, rc, info)
		if errors.Is(err, ErrEmptyFile) {
			return nil, fmt.Errorf("sample invalid csv: %w", err)
		}
		if err != nil {
			return nil, fmt.Errorf("sample %w", err)
		}
		return ds, nil
	})
}

// run executes one ingestion attempt under a ticket. A result that arrives
// after a newer attempt has started is dropped.
func (s *Service) run(ctx context.Context, sess *Session, src SourceInfo, parse func(context.Context) (*Dataset, error)) (err error) {
	ticket := sess.BeginIngest()
	ctx = logging.WithSessionID(ctx, sess.ID)
	log := logging.WithFields(ctx, "file", src.FileName, "seq", ticket.Seq())
	start := time.Now()

	var ds *Dataset
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic in ingestion", "panic", r)
			ds, err = nil, fmt.Errorf("internal error: %v", r)
		}
		if !sess.FinishIngest(ticket, ds, err) {
			log.Info("ingestion superseded, result discarded")
			return
		}
		if err != nil {
			log.Warn("ingestion failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
			return
		}
		log.Info("ingestion complete",
			"rows", ds.Len(),
			"columns", len(ds.Headers),
			"bytes", ds.Source.Size,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	if err = s.limiter.Acquire(ctx); err != nil {
		return err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.IngestTimeout)
	defer cancel()

	log.Debug("ingestion started", "size", src.Size)
	ds, err = parse(ctx)
	return err
}

// StartSessionJanitor sweeps expired sessions every CleanupInterval until
// ctx is cancelled.
func (s *Service) StartSessionJanitor(ctx context.Context) {
	slog.Info("session janitor started",
		"ttl", s.cfg.SessionTTL,
		"interval", s.cfg.CleanupInterval,
	)

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			if removed := s.store.Sweep(); removed > 0 {
				slog.Info("expired sessions removed",
					"removed", removed,
					"remaining", s.store.Len(),
				)
			}
		}
	}
}

// UploadLimiterStatus reports ingestion slot usage.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight ingestions finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
