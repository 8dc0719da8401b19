package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/smallbiznis/orderlens/internal/report/domain"
)

const dateOnlyLayout = "2006-01-02"

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed, nil
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		if endOfDay {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		} else {
			parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
		return &parsed, nil
	}
	return nil, errors.New("invalid_time")
}

// parseListParam splits a comma-separated selection. Blank segments are
// dropped; the "All" sentinel is passed through for the filter layer to
// interpret.
func parseListParam(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseReportQuery reads the filter parameters shared by every report
// endpoint. The end date widens to end-of-day so a date-only bound
// keeps that day's orders.
func parseReportQuery(c *gin.Context) (reportdomain.Query, error) {
	start, err := parseOptionalTime(c.Query("start"), false)
	if err != nil {
		return reportdomain.Query{}, newValidationError("start", "invalid_start", "invalid start date")
	}

	end, err := parseOptionalTime(c.Query("end"), true)
	if err != nil {
		return reportdomain.Query{}, newValidationError("end", "invalid_end", "invalid end date")
	}

	query := reportdomain.Query{
		Start:    start,
		End:      end,
		Regions:  parseListParam(c.Query("regions")),
		Products: parseListParam(c.Query("products")),
		Channel:  strings.TrimSpace(c.Query("channel")),
	}
	if err := query.Validate(); err != nil {
		return reportdomain.Query{}, err
	}
	return query, nil
}
