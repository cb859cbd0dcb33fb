package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/pkg/utils"
)

// earlyMonthPadDays is the number of trailing previous-month days shown when
// the daily-volume window is anchored in the first days of a month, so the
// chart is not empty right after a month rollover.
const earlyMonthPadDays = 5

const hoursPerDay = 24

// StatsService computes on-demand statistics reports for a tenant. Reports
// are regenerated on every call; nothing is cached.
type StatsService struct {
	requestDAO RequestDAO
	logDAO     RequestLogDAO
	tenantDAO  TenantDAO
	logger     *logrus.Logger
	now        func() time.Time
}

// NewStatsService creates a new stats service instance
func NewStatsService(requestDAO RequestDAO, logDAO RequestLogDAO, tenantDAO TenantDAO, logger *logrus.Logger) *StatsService {
	return &StatsService{
		requestDAO: requestDAO,
		logDAO:     logDAO,
		tenantDAO:  tenantDAO,
		logger:     logger,
		now:        time.Now,
	}
}

// CalculateStats produces a complete statistics report for the identified
// tenant: status histogram over all canonical statuses, calendar-bucketed
// daily volume, tenant-level average response time in days, per-source
// request distribution, and the save-offer funnel. The three bulk reads run
// concurrently; any failure fails the whole call, so the caller receives
// either a complete report or an error, never a partial one.
func (s *StatsService) CalculateStats(ctx context.Context, params *models.StatsParams) (*models.StatsResponse, error) {
	if params == nil || params.TenantType == "" || params.TenantID == "" {
		return nil, fmt.Errorf("tenantType and tenantId are required: %w", models.ErrInvalidArgument)
	}

	filter := models.RequestFilter{
		SubmittedFrom: params.FromDate,
		SubmittedTo:   params.ToDate,
	}
	if params.TenantType == models.TenantTypeProxy {
		filter.ProxyTenantID = params.TenantID
	} else {
		filter.ProviderTenantID = params.TenantID
		// Source drill-down is only meaningful from the provider's side.
		if params.SourceID != "" {
			filter.ProxyTenantID = params.SourceID
		}
	}

	var (
		requests []models.Request
		logs     []models.RequestLog
		tenants  []models.Tenant

		requestErr, logErr, tenantErr error
	)

	// Fan out the three bulk reads. No isolation across them: a request
	// created mid-flight may appear in one read and not another.
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		requests, requestErr = s.requestDAO.Query(ctx, filter)
	}()
	go func() {
		defer wg.Done()
		logs, logErr = s.logDAO.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		tenants, tenantErr = s.tenantDAO.GetAll(ctx)
	}()
	wg.Wait()

	for _, err := range []error{requestErr, logErr, tenantErr} {
		if err != nil {
			return nil, err
		}
	}

	logsByRequest := make(map[string]*models.RequestLog, len(logs))
	for i := range logs {
		logsByRequest[logs[i].RequestID] = &logs[i]
	}

	statusCounts := make(map[string]int, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		statusCounts[status] = 0
	}

	today := s.now()
	windowStart := dailyVolumeWindowStart(today)
	dailyVolume := make(map[string]int)
	for day := windowStart; !day.After(today); day = day.AddDate(0, 0, 1) {
		dailyVolume[utils.DayKey(day)] = 0
	}

	thirtyDaysAgo := today.AddDate(0, 0, -30)
	sourceDistribution := make(map[string]int)
	var offerCounts models.SaveOfferCounts
	var respondedDays float64
	respondedCount := 0

	for i := range requests {
		request := &requests[i]

		submitted, submittedOK := parseRequestDate(request.DateSubmitted)
		if submittedOK {
			key := utils.DayKey(submitted)
			if !submitted.Before(windowStart) {
				if _, inWindow := dailyVolume[key]; inWindow {
					dailyVolume[key]++
				}
			}
			// Legacy trailing-30-day accumulation kept for output parity
			// with the dashboard: days inside both windows count twice.
			if !submitted.Before(thirtyDaysAgo) {
				if _, inWindow := dailyVolume[key]; inWindow {
					dailyVolume[key]++
				}
			}
		}

		statusCounts[request.Status]++

		if responded, respondedOK := parseRequestDate(request.DateResponded); respondedOK && submittedOK {
			respondedDays += responded.Sub(submitted).Hours() / hoursPerDay
			respondedCount++
		}

		sourceDistribution[request.ProxyTenantID]++

		// The funnel scans the full status history, so one request can sit
		// in several buckets over its lifetime.
		if log, ok := logsByRequest[request.ID]; ok {
			for _, change := range log.Changes {
				if change.Field != "status" {
					continue
				}
				switch change.NewValue {
				case models.StatusSaveOffered:
					offerCounts.Offered++
				case models.StatusSaveAccepted:
					offerCounts.Accepted++
				case models.StatusSaveDeclined:
					offerCounts.Declined++
				}
			}
		}
	}

	averageResponseTime := 0.0
	if respondedCount > 0 {
		averageResponseTime = utils.RoundTo(respondedDays/float64(respondedCount), 1)
	}

	tenantRefs := make([]models.TenantRef, 0)
	for i := range tenants {
		if _, isSource := sourceDistribution[tenants[i].ID]; isSource {
			tenantRefs = append(tenantRefs, models.TenantRef{
				ID:   tenants[i].ID,
				Name: tenants[i].Name,
			})
		}
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_type":   params.TenantType,
		"tenant_id":     params.TenantID,
		"request_count": len(requests),
	}).Debug("Computed tenant stats")

	return &models.StatsResponse{
		Requests: models.RequestsStats{
			TotalCount:          len(requests),
			StatusCounts:        statusCounts,
			AverageResponseTime: averageResponseTime,
			DailyVolume:         dailyVolume,
			SourceDistribution:  sourceDistribution,
			SaveOfferCounts:     offerCounts,
		},
		Tenants: tenantRefs,
	}, nil
}

// dailyVolumeWindowStart anchors the bucket window on today. In the first
// days of a month the window reaches back into the previous month so the
// chart is not near-empty right after rollover.
func dailyVolumeWindowStart(today time.Time) time.Time {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	if today.Day() <= earlyMonthPadDays {
		return monthStart.AddDate(0, 0, -earlyMonthPadDays)
	}
	return monthStart
}

func parseRequestDate(value *string) (time.Time, bool) {
	if value == nil || *value == "" {
		return time.Time{}, false
	}
	t, err := utils.ParseTime(*value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
