package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskarena/backend/repository"
)

// ReconcilerConfig controls the asymmetric-edge sweep.
type ReconcilerConfig struct {
	Interval  time.Duration
	BatchSize int
}

// EdgeReconciler periodically scans the friend graph for edges whose
// reverse direction is missing and inserts the missing half. Normal
// friendship creation is transactional, so asymmetry only appears through
// out-of-band writes or partial restores.
type EdgeReconciler struct {
	friends repository.FriendRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     ReconcilerConfig
}

func NewEdgeReconciler(friends repository.FriendRepository, logger *zap.Logger, cfg ReconcilerConfig) *EdgeReconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	er := &EdgeReconciler{
		friends: friends,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = er.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := er.Sweep(ctx); err != nil {
			er.logger.Error("edge reconciliation failed", zap.Error(err))
		}
	})

	return er
}

func (er *EdgeReconciler) Start() {
	if er == nil || er.cron == nil {
		return
	}
	er.cron.Start()
	er.logger.Info("edge reconciler started")
}

func (er *EdgeReconciler) Stop(ctx context.Context) {
	if er == nil || er.cron == nil {
		return
	}
	stopCtx := er.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	er.logger.Info("edge reconciler stopped")
}

// Sweep repairs one batch of asymmetric edges.
func (er *EdgeReconciler) Sweep(ctx context.Context) error {
	edges, err := er.friends.ListAsymmetric(ctx, er.cfg.BatchSize)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return nil
	}

	er.logger.Warn("asymmetric friend edges detected", zap.Int("count", len(edges)))

	repaired := 0
	for _, edge := range edges {
		if err := er.friends.AddEdge(ctx, edge.FriendID, edge.UserID); err != nil {
			er.logger.Error("failed to repair friend edge",
				zap.String("user_id", edge.UserID),
				zap.String("friend_id", edge.FriendID),
				zap.Error(err))
			continue
		}
		repaired++
	}

	er.logger.Info("friend edges repaired", zap.Int("repaired", repaired))
	return nil
}
