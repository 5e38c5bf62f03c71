package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/armandorgr/Project-manager/internal/auth/store"
)

// HousekeepingService periodically removes expired refresh tokens and
// revocation entries so neither table grows without bound.
type HousekeepingService struct {
	Store       store.Store
	Revocations store.RevokedTokens
	Clock       Clock
	Logger      *slog.Logger
	Interval    time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour; a nil revocations store means the one
// embedded in st.
func NewHousekeepingService(st store.Store, revocations store.RevokedTokens, clock Clock, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if revocations == nil {
		revocations = st.RevokedTokens()
	}

	return &HousekeepingService{
		Store:       st,
		Revocations: revocations,
		Clock:       clock,
		Logger:      logger,
		Interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start runs the sweep immediately and then on every tick until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// SweepResult counts the rows removed by one sweep.
type SweepResult struct {
	RefreshTokens int64
	RevokedTokens int64
}

// Sweep deletes everything that expired before now. The two deletions are
// independent; a failure in one does not stop the other.
func (s *HousekeepingService) Sweep(ctx context.Context) SweepResult {
	at := now(s.Clock)
	var res SweepResult

	n, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, at)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	} else {
		res.RefreshTokens = n
	}

	n, err = s.Revocations.DeleteExpiredRevokedTokens(ctx, at)
	if err != nil {
		s.Logger.Error("failed to delete expired revoked tokens", "error", err)
	} else {
		res.RevokedTokens = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"refresh_tokens", res.RefreshTokens,
		"revoked_tokens", res.RevokedTokens,
	)
	return res
}
