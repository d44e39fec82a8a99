package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/GlennSimanjorang/sarpras/internal/api"
	"github.com/GlennSimanjorang/sarpras/internal/domain"
)

type DashboardService struct {
	API *api.Client
}

func NewDashboardService(client *api.Client) *DashboardService {
	return &DashboardService{API: client}
}

func (s *DashboardService) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	var counts domain.DashboardCounts
	if err := s.API.GetJSON(ctx, "/api/admin/dashboard/count", &counts); err != nil {
		return domain.DashboardCounts{}, err
	}
	return counts, nil
}

// ChartPoint is one renderable pair of the due-date series.
type ChartPoint struct {
	Date     time.Time
	Label    string
	ItemsDue int
}

func windowDays(window string) int {
	switch window {
	case "7d":
		return 7
	case "30d":
		return 30
	default:
		return 90
	}
}

func parseDueDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WindowSeries reduces the backend's due-date summary to a time-windowed
// series: sort ascending, anchor on the latest date present, keep everything
// within the window. Duplicate dates are preserved, not merged; rows that do
// not parse are dropped at this boundary.
func WindowSeries(points []domain.DueDatePoint, window string) []ChartPoint {
	series := make([]ChartPoint, 0, len(points))
	for _, p := range points {
		d, ok := parseDueDate(p.DueDate)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(p.ItemsDue))
		if err != nil {
			continue
		}
		series = append(series, ChartPoint{Date: d, Label: d.Format("2 Jan"), ItemsDue: n})
	}
	if len(series) == 0 {
		return series
	}

	sort.SliceStable(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	reference := series[len(series)-1].Date
	start := reference.AddDate(0, 0, -windowDays(window))

	out := series[:0:0]
	for _, p := range series {
		if !p.Date.Before(start) {
			out = append(out, p)
		}
	}
	return out
}
