package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/request-analytics/internal/events"
)

// AuditService writes an audit log line for every domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventReportGenerated, a.handleReportGenerated)
	a.dispatcher.Subscribe(events.EventStaffLoggedIn, a.handleStaffLoggedIn)
}

func (a *AuditService) handleReportGenerated(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("staff_id", event.StaffID),
	}
	if payload, ok := event.Payload.(events.ReportGeneratedPayload); ok {
		fields = append(fields,
			zap.String("report_id", payload.ReportID),
			zap.Int("total", payload.TotalCount),
			zap.Int("score", payload.Score),
			zap.String("grade", payload.Grade),
			zap.Int("stale", payload.StaleCount),
		)
	}
	a.logger.Info("ReportGenerated", fields...)
	return nil
}

func (a *AuditService) handleStaffLoggedIn(_ context.Context, event events.Event) error {
	a.logger.Info("StaffLoggedIn", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	return nil
}
