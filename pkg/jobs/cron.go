// Package jobs runs the gateway's scheduled maintenance: sweeping
// expired sessions and probing upstream reachability.
package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Keerthan22-sys/Instigar/pkg/logger"
	"github.com/Keerthan22-sys/Instigar/pkg/metrics"
	"github.com/Keerthan22-sys/Instigar/pkg/session"
	"github.com/Keerthan22-sys/Instigar/pkg/upstream"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron     *cron.Cron
	sessions *session.Manager
	upstream *upstream.Client
	metrics  *metrics.Metrics
	logger   logger.Logger

	upstreamUp atomic.Bool
}

// NewCronManager creates a new cron manager
func NewCronManager(sessions *session.Manager, up *upstream.Client, m *metrics.Metrics, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}
	cm := &CronManager{
		cron:     cron.New(),
		sessions: sessions,
		upstream: up,
		metrics:  m,
		logger:   log,
	}
	cm.upstreamUp.Store(true)
	return cm
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	// Every 15 minutes: drop expired sessions.
	_, err := cm.cron.AddFunc("*/15 * * * *", func() {
		removed := cm.sessions.Sweep()
		cm.metrics.ActiveSessions.Set(float64(cm.sessions.Count()))
		if removed > 0 {
			cm.logger.Info("swept expired sessions",
				"removed", removed,
				"remaining", cm.sessions.Count())
		}
	})
	if err != nil {
		return err
	}

	// Every 5 minutes: probe the upstream so reachability flips show up
	// in the health endpoint between user requests.
	_, err = cm.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := cm.upstream.Ping(ctx); err != nil {
			if cm.upstreamUp.Swap(false) {
				cm.logger.Warn("upstream became unreachable", "error", err)
			}
			cm.metrics.UpstreamErrors.WithLabelValues("ping", "unreachable").Inc()
			return
		}
		if !cm.upstreamUp.Swap(true) {
			cm.logger.Info("upstream reachable again")
		}
	})
	return err
}

// Start begins executing scheduled jobs
func (cm *CronManager) Start() {
	cm.cron.Start()
	cm.logger.Info("cron jobs started")
}

// Stop halts all scheduled jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
	cm.logger.Info("cron jobs stopped")
}

// UpstreamHealthy reports the last probe result.
func (cm *CronManager) UpstreamHealthy() bool {
	return cm.upstreamUp.Load()
}
