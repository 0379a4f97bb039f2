package worker

import (
	"context"
	"errors"
	"time"

	"github.com/pharmadirect/internal/config"
	"github.com/pharmadirect/internal/logger"
	"github.com/pharmadirect/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	interval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, engineCfg *config.EngineConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	var interval time.Duration
	if engineCfg != nil && engineCfg.IntervalMinutes > 0 {
		interval = time.Duration(engineCfg.IntervalMinutes) * time.Minute
	}
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
		interval: interval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.interval > 0 && s.consumer != nil && s.consumer.DiscountEngineService != nil {
		go s.runEngineLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runEngineLoop 按配置间隔周期执行折扣引擎，启动时先跑一轮
func (s *Service) runEngineLoop(ctx context.Context) {
	runOnce := func() {
		summary, err := s.consumer.DiscountEngineService.Run()
		if err != nil {
			logger.Warnw("worker_engine_loop_run_failed", "error", err)
			return
		}
		if len(summary.Errors) > 0 {
			logger.Warnw("worker_engine_loop_run_partial", "errors", summary.Errors)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
