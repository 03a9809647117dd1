package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/revenuereports/internal/domain"
	"github.com/jafarshop/revenuereports/internal/shopify"
	apperrors "github.com/jafarshop/revenuereports/pkg/errors"
)

// maxReportOrders is the safety ceiling on how many orders one report will
// fetch. Hitting it stops pagination early and processes what was collected;
// it is not an error.
const maxReportOrders = 10000

type ReportService struct {
	client    *shopify.Client
	directory *CustomerDirectory
	logger    *zap.Logger

	pageSize  int
	maxOrders int
}

// NewReportService creates the report aggregator
func NewReportService(client *shopify.Client, directory *CustomerDirectory, logger *zap.Logger) *ReportService {
	if directory == nil {
		directory = NewCustomerDirectory(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		client:    client,
		directory: directory,
		logger:    logger,
		pageSize:  shopify.PageSize,
		maxOrders: maxReportOrders,
	}
}

// ReportParams is a validated report request
type ReportParams struct {
	Start      time.Time
	End        time.Time
	Metric     domain.ReportMetric
	CustomerID int64
}

// ReportMetadata echoes the request back with the generation timestamp
type ReportMetadata struct {
	Start       time.Time           `json:"start"`
	End         time.Time           `json:"end"`
	Metric      domain.ReportMetric `json:"metric"`
	CustomerID  int64               `json:"customerId,omitempty"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// Report is the full report response body
type Report struct {
	Summary   []domain.SummaryGroup  `json:"summary"`
	Detail    []domain.ReportRow     `json:"detail"`
	Analytics domain.ReportAnalytics `json:"analytics"`
	Metadata  ReportMetadata         `json:"metadata"`
}

// ParseDateRange validates a start/end pair. Both must be valid RFC3339
// timestamps with start strictly before end.
func ParseDateRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, &apperrors.ErrValidation{Message: "start and end are required"}
	}
	startT, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, &apperrors.ErrValidation{Message: "start must be a valid RFC3339 timestamp"}
	}
	endT, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, &apperrors.ErrValidation{Message: "end must be a valid RFC3339 timestamp"}
	}
	if !startT.Before(endT) {
		return time.Time{}, time.Time{}, &apperrors.ErrValidation{Message: "start must be before end"}
	}
	return startT, endT, nil
}

// ParseReportParams validates raw report inputs before any upstream call
func ParseReportParams(start, end, metric, customerID string) (ReportParams, error) {
	startT, endT, err := ParseDateRange(start, end)
	if err != nil {
		return ReportParams{}, err
	}
	m := domain.ReportMetric(metric)
	if !m.IsValid() {
		return ReportParams{}, &apperrors.ErrValidation{Message: "metric must be \"billing\" or \"actual\""}
	}
	p := ReportParams{Start: startT, End: endT, Metric: m}
	if customerID != "" {
		id, err := strconv.ParseInt(customerID, 10, 64)
		if err != nil || id <= 0 {
			return ReportParams{}, &apperrors.ErrValidation{Message: "customerId must be a positive integer"}
		}
		p.CustomerID = id
	}
	return p, nil
}

// FetchOrders pulls all fulfilled orders in the window via since_id cursor
// pagination. Stops on a short page, or once the cumulative count reaches
// the safety ceiling.
func (s *ReportService) FetchOrders(ctx context.Context, start, end time.Time, customerID int64) ([]domain.Order, error) {
	var all []domain.Order
	var sinceID int64

	for {
		page, err := s.client.ListOrders(ctx, shopify.OrderListParams{
			CreatedAtMin: start,
			CreatedAtMax: end,
			SinceID:      sinceID,
			CustomerID:   customerID,
			Limit:        s.pageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if len(page) < s.pageSize {
			break
		}
		if len(all) >= s.maxOrders {
			s.logger.Warn("Order fetch hit safety ceiling, continuing with partial set",
				zap.Int("fetched", len(all)), zap.Int("ceiling", s.maxOrders))
			break
		}
		sinceID = page[len(page)-1].ID
	}
	return all, nil
}

// GenerateReport runs the full pipeline: fetch, per-order enrichment,
// grouping, analytics. Enrichment errors degrade single rows; only a failure
// of the initial fetch aborts the report.
func (s *ReportService) GenerateReport(ctx context.Context, p ReportParams) (*Report, error) {
	orders, err := s.FetchOrders(ctx, p.Start, p.End, p.CustomerID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Generating report",
		zap.Int("orders", len(orders)),
		zap.String("metric", string(p.Metric)),
		zap.Time("start", p.Start),
		zap.Time("end", p.End),
	)

	// Sequential on purpose: the shared limiter paces these calls under the
	// upstream rate limit.
	rows := make([]domain.ReportRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, s.enrichOrder(ctx, order))
	}

	summary := buildSummary(rows, p.Metric)
	return &Report{
		Summary:   summary,
		Detail:    rows,
		Analytics: buildAnalytics(summary),
		Metadata: ReportMetadata{
			Start:       p.Start,
			End:         p.End,
			Metric:      p.Metric,
			CustomerID:  p.CustomerID,
			GeneratedAt: time.Now().UTC(),
		},
	}, nil
}

// customerKey groups rows by email when present, falling back to the numeric
// customer ID, then to "unknown"
func customerKey(row domain.ReportRow) string {
	if row.CustomerEmail != "" {
		return row.CustomerEmail
	}
	if row.CustomerID > 0 {
		return strconv.FormatInt(row.CustomerID, 10)
	}
	return "unknown"
}

// buildSummary groups rows by (customer key, UTC year-month). Each group's
// profit margin is recomputed from the aggregated totals.
func buildSummary(rows []domain.ReportRow, metric domain.ReportMetric) []domain.SummaryGroup {
	type bucket struct {
		group   domain.SummaryGroup
		numbers []string
	}
	buckets := make(map[string]*bucket)

	for _, row := range rows {
		customer := customerKey(row)
		month := row.Date.UTC().Format("2006-01")
		key := customer + "|" + month

		b, ok := buckets[key]
		if !ok {
			b = &bucket{group: domain.SummaryGroup{Customer: customer, Month: month}}
			buckets[key] = b
		}

		b.group.Orders++
		b.group.TotalBilling += row.BillingAmount
		b.group.TotalActual += row.ActualSpend
		if metric == domain.MetricActual {
			b.group.Amount += row.ActualSpend
		} else {
			b.group.Amount += row.BillingAmount
		}
		b.numbers = append(b.numbers, row.OrderNumber)
	}

	groups := make([]domain.SummaryGroup, 0, len(buckets))
	for _, b := range buckets {
		sort.Strings(b.numbers)
		b.group.OrderNumbers = strings.Join(b.numbers, ", ")
		if b.group.TotalBilling > 0 {
			b.group.ProfitMargin = (b.group.TotalBilling - b.group.TotalActual) / b.group.TotalBilling * 100
		}
		groups = append(groups, b.group)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Month != groups[j].Month {
			return groups[i].Month < groups[j].Month
		}
		return groups[i].Customer < groups[j].Customer
	})
	return groups
}

// buildAnalytics summarizes the groups. The average margin is the mean of
// group-level margins (not a margin over grand totals), matching the
// observed reporting behavior.
func buildAnalytics(groups []domain.SummaryGroup) domain.ReportAnalytics {
	analytics := domain.ReportAnalytics{}
	customers := make(map[string]struct{})
	var marginSum float64
	for _, g := range groups {
		analytics.TotalRevenue += g.Amount
		analytics.TotalOrders += g.Orders
		customers[g.Customer] = struct{}{}
		marginSum += g.ProfitMargin
	}
	analytics.UniqueCustomers = len(customers)
	if len(groups) > 0 {
		analytics.AvgProfitMargin = math.Round(marginSum/float64(len(groups))*100) / 100
	}
	return analytics
}
