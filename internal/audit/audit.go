// Package audit fans conversion events out to downstream listeners. The
// durable audit trail lives in the conversion store; notifiers carry the
// same events to observability and outreach systems and are best-effort.
package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/relata/relata/internal/domain"
	"github.com/relata/relata/internal/metrics"
)

// Notifier receives a conversion event after it has been applied and
// recorded.
type Notifier interface {
	Notify(ctx context.Context, conv *domain.Conversion) error
}

// LogNotifier writes each conversion to the structured log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, conv *domain.Conversion) error {
	slog.Info("conversion triggered",
		"tenant", conv.TenantID,
		"contact", conv.ContactID,
		"from", conv.FromPipeline+"/"+conv.FromStage,
		"to", conv.ToPipeline+"/"+conv.ToStage,
	)
	return nil
}

// MetricsNotifier increments the conversion counter.
type MetricsNotifier struct {
	Metrics *metrics.Metrics
}

// Notify implements Notifier.
func (n MetricsNotifier) Notify(_ context.Context, conv *domain.Conversion) error {
	n.Metrics.Conversions.WithLabelValues(conv.FromPipeline, conv.ToPipeline).Inc()
	return nil
}

// Multi fans one event out to several notifiers. All notifiers run even
// when earlier ones fail; errors are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, conv *domain.Conversion) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, conv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
