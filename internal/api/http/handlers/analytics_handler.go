package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/request-analytics/internal/analytics"
	"github.com/spec-kit/request-analytics/internal/api/dto"
	"github.com/spec-kit/request-analytics/internal/auth"
	"github.com/spec-kit/request-analytics/internal/domain"
	"github.com/spec-kit/request-analytics/internal/service"
	apperrors "github.com/spec-kit/request-analytics/pkg/util/errorutil"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
	defaultTopDepts  = 5
)

// AnalyticsHandler serves the staff analytics dashboard.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsService}
}

// Report handles GET /staff/analytics/report.
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	staff, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	q, err := parseReportQuery(c, h.analytics.Now())
	if err != nil {
		return err
	}
	result, err := h.analytics.BuildReport(c.UserContext(), staff, q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(result)})
}

// Departments handles GET /staff/analytics/departments.
func (h *AnalyticsHandler) Departments(c *fiber.Ctx) error {
	staff, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	q, err := parseReportQuery(c, h.analytics.Now())
	if err != nil {
		return err
	}
	top := defaultTopDepts
	if raw := c.Query("top"); raw != "" {
		top, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("top must be an integer", map[string]any{"top": raw})
		}
	}
	shares, total, err := h.analytics.TopDepartments(c.UserContext(), staff, q, top)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DepartmentsResponse{
		TotalCount:  total,
		Departments: departmentResponses(shares),
	}})
}

func staffPrincipal(c *fiber.Ctx) (*domain.StaffMember, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	return principal.Staff, nil
}

// parseReportQuery reads the dashboard filters. Without any dates the range
// is the 30 days ending on today.
func parseReportQuery(c *fiber.Ctx, now time.Time) (analytics.Query, error) {
	var q analytics.Query
	rawFrom, rawTo := strings.TrimSpace(c.Query("date_from")), strings.TrimSpace(c.Query("date_to"))

	if rawFrom == "" && rawTo == "" {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		q.DateFrom = today.AddDate(0, 0, -(defaultRangeDays - 1))
		q.DateTo = today
	}
	if rawFrom != "" {
		from, err := time.ParseInLocation(dateLayout, rawFrom, now.Location())
		if err != nil {
			return q, apperrors.NewValidationError("date_from must be YYYY-MM-DD", map[string]any{"date_from": rawFrom})
		}
		q.DateFrom = from
	}
	if rawTo != "" {
		to, err := time.ParseInLocation(dateLayout, rawTo, now.Location())
		if err != nil {
			return q, apperrors.NewValidationError("date_to must be YYYY-MM-DD", map[string]any{"date_to": rawTo})
		}
		q.DateTo = to
	}
	if !q.DateFrom.IsZero() && !q.DateTo.IsZero() && q.DateFrom.After(q.DateTo) {
		return q, apperrors.NewValidationError("date_from must not be after date_to", map[string]any{
			"date_from": q.DateFrom.Format(dateLayout),
			"date_to":   q.DateTo.Format(dateLayout),
		})
	}

	if dept := c.Query("department"); dept != "" {
		q.Department = &dept
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.RequestStatus(raw)
		if !status.Valid() {
			return q, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		q.Status = &status
	}
	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperrors.NewValidationError("seed must be an integer", map[string]any{"seed": raw})
		}
		q.Seed = seed
	}
	return q, nil
}

func reportResponse(result *service.ReportResult) dto.ReportResponse {
	r, q := result.Report, result.Query
	filter := dto.ReportFilterResponse{Department: q.Department, Seed: q.Seed}
	if !q.DateFrom.IsZero() {
		filter.DateFrom = q.DateFrom.Format(dateLayout)
	}
	if !q.DateTo.IsZero() {
		filter.DateTo = q.DateTo.Format(dateLayout)
	}
	if q.Status != nil {
		status := string(*q.Status)
		filter.Status = &status
	}

	byStatus := make(map[string]int, len(r.CountByStatus))
	for status, n := range r.CountByStatus {
		byStatus[string(status)] = n
	}
	contacts := make(map[string]int, len(r.ContactsByStatus))
	for status, n := range r.ContactsByStatus {
		contacts[string(status)] = n
	}
	trend := make([]dto.DailyCountResponse, 0, len(r.Trend))
	for _, day := range r.Trend {
		trend = append(trend, dto.DailyCountResponse{Date: day.Date, Count: day.Count})
	}
	factors := make([]dto.FactorResponse, 0, len(r.Score.Factors))
	for _, f := range r.Score.Factors {
		factors = append(factors, dto.FactorResponse{
			Key:         string(f.Key),
			SubScore:    f.SubScore,
			Weight:      f.Weight,
			Partial:     f.Partial,
			Explanation: f.Explanation,
		})
	}

	return dto.ReportResponse{
		ID:            result.ID,
		GeneratedAt:   r.GeneratedAt,
		Cached:        result.Cached,
		Filter:        filter,
		TotalCount:    r.TotalCount,
		CountByStatus: byStatus,
		Departments:   departmentResponses(r.Departments),
		Durations: dto.ReportDurations{
			Start:  dto.DurationResponse{Minutes: r.AvgStartMinutes, Label: r.AvgStartLabel},
			Answer: dto.DurationResponse{Minutes: r.AvgAnswerMinutes, Label: r.AvgAnswerLabel},
			Close:  dto.DurationResponse{Minutes: r.AvgCloseMinutes, Label: r.AvgCloseLabel},
		},
		StaleCount:            r.StaleCount,
		CompletionRatePercent: r.CompletionRatePercent,
		Trend:                 trend,
		Score:                 r.Score.Value,
		Grade:                 string(r.Score.Grade),
		Factors:               factors,
		Recommendations:       r.Recommendations,
		ContactsByStatus:      contacts,
	}
}

func departmentResponses(shares []analytics.DepartmentShare) []dto.DepartmentShareResponse {
	resp := make([]dto.DepartmentShareResponse, 0, len(shares))
	for _, share := range shares {
		resp = append(resp, dto.DepartmentShareResponse{
			Department: share.Department,
			Count:      share.Count,
			Percent:    share.Percent,
		})
	}
	return resp
}
