package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/joedev/portfolio-api"

// Metrics holds the API's counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	created metric.Int64Counter
	deleted metric.Int64Counter
	logins  metric.Int64Counter
}

// NewMetrics registers the counters on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(instrumentationName)

	created, err := meter.Int64Counter("portfolio.submissions.created",
		metric.WithDescription("Contact submissions stored"))
	if err != nil {
		return nil, err
	}
	deleted, err := meter.Int64Counter("portfolio.submissions.deleted",
		metric.WithDescription("Contact submissions deleted by an admin"))
	if err != nil {
		return nil, err
	}
	logins, err := meter.Int64Counter("portfolio.admin.logins",
		metric.WithDescription("Admin login attempts by result"))
	if err != nil {
		return nil, err
	}
	return &Metrics{created: created, deleted: deleted, logins: logins}, nil
}

// SubmissionCreated counts one stored submission.
func (m *Metrics) SubmissionCreated(ctx context.Context, projectType string) {
	if m == nil {
		return
	}
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("project_type", projectType)))
}

// SubmissionDeleted counts one deleted submission.
func (m *Metrics) SubmissionDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.deleted.Add(ctx, 1)
}

// LoginAttempt counts an admin login by outcome.
func (m *Metrics) LoginAttempt(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
