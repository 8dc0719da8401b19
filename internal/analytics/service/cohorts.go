package service

import (
	"context"
	"sort"
	"time"

	analyticsdomain "github.com/smallbiznis/orderlens/internal/analytics/domain"
	"github.com/smallbiznis/orderlens/internal/dataset"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

// Cohorts builds the retention matrix: customers grouped by their
// first-activity month, distinct-counted at each elapsed month.
func (s *Service) Cohorts(ctx context.Context, query reportdomain.Query) (analyticsdomain.CohortMatrix, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return analyticsdomain.CohortMatrix{}, err
	}

	firsts := firstMonths(records)
	if len(firsts) == 0 {
		return analyticsdomain.CohortMatrix{Cohorts: []analyticsdomain.CohortRow{}}, nil
	}

	// distinct customers per (cohort, elapsed month)
	counts := make(map[time.Time]map[int]map[string]struct{})
	maxPeriod := 0
	for _, rec := range records {
		if rec.CustomerID == "" {
			continue
		}
		cohort := firsts[rec.CustomerID]
		period := monthsBetween(cohort, monthStart(*rec.Date))
		if period > maxPeriod {
			maxPeriod = period
		}
		byPeriod := counts[cohort]
		if byPeriod == nil {
			byPeriod = make(map[int]map[string]struct{})
			counts[cohort] = byPeriod
		}
		set := byPeriod[period]
		if set == nil {
			set = make(map[string]struct{})
			byPeriod[period] = set
		}
		set[rec.CustomerID] = struct{}{}
	}

	cohorts := make([]time.Time, 0, len(counts))
	for cohort := range counts {
		cohorts = append(cohorts, cohort)
	}
	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i].Before(cohorts[j]) })

	matrix := analyticsdomain.CohortMatrix{
		Periods: maxPeriod + 1,
		Cohorts: make([]analyticsdomain.CohortRow, 0, len(cohorts)),
	}
	for _, cohort := range cohorts {
		byPeriod := counts[cohort]
		size := len(byPeriod[0])
		row := analyticsdomain.CohortRow{
			Cohort:    monthKey(cohort),
			Size:      size,
			Counts:    make([]int, matrix.Periods),
			Retention: make([]float64, matrix.Periods),
		}
		for period, set := range byPeriod {
			row.Counts[period] = len(set)
			if size > 0 {
				row.Retention[period] = float64(len(set)) / float64(size)
			}
		}
		matrix.Cohorts = append(matrix.Cohorts, row)
	}
	return matrix, nil
}

// Churn reports, for each consecutive pair of observed months, the
// share of the earlier month's customers missing from the later one.
func (s *Service) Churn(ctx context.Context, query reportdomain.Query) ([]analyticsdomain.ChurnPoint, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}

	sets := activeByMonth(records)
	months := sortedMonths(sets)

	points := make([]analyticsdomain.ChurnPoint, 0, len(months))
	for i := 1; i < len(months); i++ {
		prev := sets[months[i-1]]
		curr := sets[months[i]]
		point := analyticsdomain.ChurnPoint{Month: months[i]}
		if len(prev) > 0 {
			retained := 0
			for id := range curr {
				if _, ok := prev[id]; ok {
					retained++
				}
			}
			rate := 100 * (1 - float64(retained)/float64(len(prev)))
			point.Rate = &rate
		}
		points = append(points, point)
	}
	return points, nil
}

// MonthlyCustomers tracks active, new and cumulative customers per
// observed month.
func (s *Service) MonthlyCustomers(ctx context.Context, query reportdomain.Query) ([]analyticsdomain.MonthlyCustomersPoint, error) {
	records, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}

	sets := activeByMonth(records)
	months := sortedMonths(sets)

	newByMonth := make(map[string]int)
	for _, first := range firstMonths(records) {
		newByMonth[monthKey(first)]++
	}

	points := make([]analyticsdomain.MonthlyCustomersPoint, 0, len(months))
	cumulative := 0
	for _, month := range months {
		fresh := newByMonth[month]
		cumulative += fresh
		points = append(points, analyticsdomain.MonthlyCustomersPoint{
			Month:      month,
			Active:     len(sets[month]),
			New:        fresh,
			Cumulative: cumulative,
		})
	}
	return points, nil
}

// firstMonths maps each customer to the month of their first activity.
func firstMonths(records []dataset.Record) map[string]time.Time {
	firsts := make(map[string]time.Time)
	for _, rec := range records {
		if rec.CustomerID == "" || rec.Date == nil {
			continue
		}
		month := monthStart(*rec.Date)
		if current, ok := firsts[rec.CustomerID]; !ok || month.Before(current) {
			firsts[rec.CustomerID] = month
		}
	}
	return firsts
}

func activeByMonth(records []dataset.Record) map[string]map[string]struct{} {
	sets := make(map[string]map[string]struct{})
	for _, rec := range records {
		if rec.CustomerID == "" || rec.Date == nil {
			continue
		}
		month := monthKey(*rec.Date)
		set := sets[month]
		if set == nil {
			set = make(map[string]struct{})
			sets[month] = set
		}
		set[rec.CustomerID] = struct{}{}
	}
	return sets
}

func sortedMonths(sets map[string]map[string]struct{}) []string {
	months := make([]string, 0, len(sets))
	for month := range sets {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
