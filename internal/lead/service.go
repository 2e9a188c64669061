package lead

import (
	"context"
	"fmt"

	"edenstone/internal/logger"
	"edenstone/internal/metrics"

	"go.uber.org/zap"
)

// Notifier is told about every delivered lead. Notification failures never
// fail the submission.
type Notifier interface {
	NotifyLead(ctx context.Context, req CallbackRequest) error
}

type Service interface {
	Submit(ctx context.Context, form Form) error
}

type service struct {
	gateway  Gateway
	notifier Notifier
}

// NewService builds the lead service. notifier may be nil.
func NewService(gateway Gateway, notifier Notifier) Service {
	return &service{gateway: gateway, notifier: notifier}
}

// Submit validates the form and posts it once. There is no retry.
func (s *service) Submit(ctx context.Context, form Form) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SubmitLead"),
	)

	if err := form.Validate(); err != nil {
		metrics.LeadsRejected.Inc()
		log.Info("lead rejected", zap.String("reason", err.Error()))
		return err
	}

	timer := metrics.StartTimer()
	req := form.Request()

	if err := s.gateway.SendCallback(ctx, req); err != nil {
		metrics.LeadsFailed.Inc()
		log.Error("lead submission failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	metrics.LeadsSubmitted.Inc()
	log.Info("lead submitted", zap.Duration("duration", timer.Duration()))

	if s.notifier != nil {
		if err := s.notifier.NotifyLead(ctx, req); err != nil {
			log.Warn("lead notification failed", zap.Error(err))
		}
	}

	return nil
}
