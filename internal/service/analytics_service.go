package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/request-analytics/internal/analytics"
	"github.com/spec-kit/request-analytics/internal/cache"
	"github.com/spec-kit/request-analytics/internal/domain"
	"github.com/spec-kit/request-analytics/internal/events"
	"github.com/spec-kit/request-analytics/internal/observability"
	"github.com/spec-kit/request-analytics/internal/repository"
	apperrors "github.com/spec-kit/request-analytics/pkg/util/errorutil"
)

// AnalyticsService loads records and runs the analytics pipeline over them.
type AnalyticsService struct {
	requests   repository.RequestRepository
	contacts   repository.ContactRepository
	cache      cache.ReportCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	RequestRepo repository.RequestRepository
	ContactRepo repository.ContactRepository
	Cache       cache.ReportCache
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	Location    *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// ReportResult is a computed or cached report.
type ReportResult struct {
	ID     string
	Report analytics.Report
	// Query is the query the report covers, after staff scoping.
	Query  analytics.Query
	Cached bool
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	s := &AnalyticsService{
		requests:   deps.RequestRepo,
		contacts:   deps.ContactRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		loc:        deps.Location,
		now:        deps.Clock,
	}
	if s.cache == nil {
		s.cache = cache.NewReportCache(nil, 0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Location is the calendar location reports are computed in.
func (s *AnalyticsService) Location() *time.Location {
	return s.loc
}

// Now returns the service clock's current time in the report location.
func (s *AnalyticsService) Now() time.Time {
	return s.now().In(s.loc)
}

// BuildReport returns the report for q as seen by staff. Staff bound to a
// department only see that department, whatever q asks for.
func (s *AnalyticsService) BuildReport(ctx context.Context, staff *domain.StaffMember, q analytics.Query) (*ReportResult, error) {
	q = applyStaffScope(q, staff)
	now := s.Now()
	key := cache.Key(q, now, s.loc)

	entry, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.Error(err))
	}
	if ok {
		s.metrics.RecordReport(string(entry.Report.Score.Grade), true)
		s.logger.Debug("report served from cache", zap.String("report_id", entry.ID))
		return &ReportResult{ID: entry.ID, Report: entry.Report, Query: q, Cached: true}, nil
	}

	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("load requests: %w", err))
	}
	var contacts []domain.ContactMessage
	if s.contacts != nil {
		contacts, err = s.contacts.ListAll(ctx)
		if err != nil {
			return nil, apperrors.NewInternalError(fmt.Errorf("load contact messages: %w", err))
		}
	}

	report := analytics.Compute(requests, contacts, q, now, s.loc)
	result := &ReportResult{ID: uuid.NewString(), Report: report, Query: q}

	if err := s.cache.Set(ctx, key, cache.Entry{ID: result.ID, Report: report}); err != nil {
		s.logger.Warn("report cache write failed", zap.Error(err))
	}
	s.metrics.RecordReport(string(report.Score.Grade), false)
	s.logger.Info("report generated",
		zap.String("report_id", result.ID),
		zap.Int("records", len(requests)),
		zap.Int("total", report.TotalCount),
		zap.Int("score", report.Score.Value),
		zap.String("grade", string(report.Score.Grade)),
	)
	s.publishReportGenerated(ctx, staff, q, result)
	return result, nil
}

// TopDepartments returns the n largest departments of the report for q.
func (s *AnalyticsService) TopDepartments(ctx context.Context, staff *domain.StaffMember, q analytics.Query, n int) ([]analytics.DepartmentShare, int, error) {
	result, err := s.BuildReport(ctx, staff, q)
	if err != nil {
		return nil, 0, err
	}
	return analytics.TopDepartments(result.Report.Departments, n), result.Report.TotalCount, nil
}

func (s *AnalyticsService) publishReportGenerated(ctx context.Context, staff *domain.StaffMember, q analytics.Query, result *ReportResult) {
	if s.dispatcher == nil {
		return
	}
	from, to := q.Bounds(s.loc)
	payload := events.ReportGeneratedPayload{
		ReportID:   result.ID,
		TotalCount: result.Report.TotalCount,
		Score:      result.Report.Score.Value,
		Grade:      string(result.Report.Score.Grade),
		Department: q.Department,
		StaleCount: result.Report.StaleCount,
	}
	if q.Status != nil {
		status := string(*q.Status)
		payload.Status = &status
	}
	if !from.IsZero() {
		payload.DateFrom = from.Format("2006-01-02")
	}
	if !to.IsZero() {
		payload.DateTo = to.Format("2006-01-02")
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReportGenerated,
		Timestamp: s.now(),
		Payload:   payload,
	}
	if staff != nil {
		event.StaffID = staff.ID
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("report event handler failed", zap.Error(err))
	}
}

func applyStaffScope(q analytics.Query, staff *domain.StaffMember) analytics.Query {
	if staff == nil || staff.Role == domain.StaffRoleAdmin || staff.Department == nil {
		return q
	}
	department := *staff.Department
	q.Department = &department
	return q
}
