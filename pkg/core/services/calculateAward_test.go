package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/award"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

func australianCalendar(t *testing.T) *holidays.Calendar {
	t.Helper()
	calendar, err := holidays.NewCalendar(holidays.DefaultAustralianHolidays())
	require.NoError(t, err)
	return calendar
}

func awardRequest(start time.Time, hours float64) *AwardRequest {
	return &AwardRequest{Input: award.Input{
		BaseHourlyRate: 30,
		WorkerLevel:    1,
		Start:          start,
		End:            start.Add(time.Duration(hours * float64(time.Hour))),
	}}
}

func TestCalculateAward(t *testing.T) {
	recorder := metrics.NewRecorder()
	start := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)

	response, err := CalculateAward(context.Background(), config.Default(), australianCalendar(t), recorder, zap.NewNop(), awardRequest(start, 10))
	require.NoError(t, err)

	assert.NotEmpty(t, response.RequestID)
	assert.Empty(t, response.PublicHoliday)
	require.NotNil(t, response.Award)
	assert.Equal(t, 330.0, response.Award.TotalCost)
	assert.Equal(t, award.ShiftOvertime, response.Award.ShiftType)

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.AwardCalculations.WithLabelValues("overtime")))
	assert.Equal(t, 0.0, testutil.ToFloat64(recorder.BreakViolations.WithLabelValues("award")))
}

func TestCalculateAward_ResolvesPublicHoliday(t *testing.T) {
	christmas := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)

	response, err := CalculateAward(context.Background(), config.Default(), australianCalendar(t), nil, zap.NewNop(), awardRequest(christmas, 8))
	require.NoError(t, err)

	assert.Equal(t, "Christmas Day", response.PublicHoliday)
	assert.Equal(t, 600.0, response.Award.TotalCost)
	require.Len(t, response.Award.PenaltyMultipliers, 1)
	assert.Equal(t, "public_holiday: Christmas Day", response.Award.PenaltyMultipliers[0].Name)
}

func TestCalculateAward_ResolutionDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Award.ResolveHolidays = false
	christmas := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)

	response, err := CalculateAward(context.Background(), cfg, australianCalendar(t), nil, zap.NewNop(), awardRequest(christmas, 8))
	require.NoError(t, err)

	assert.Empty(t, response.PublicHoliday)
	assert.Equal(t, 240.0, response.Award.TotalCost)
}

func TestCalculateAward_ExplicitHolidayKept(t *testing.T) {
	christmas := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)
	request := awardRequest(christmas, 8)
	request.PublicHoliday = "Company Christmas"

	response, err := CalculateAward(context.Background(), config.Default(), australianCalendar(t), nil, zap.NewNop(), request)
	require.NoError(t, err)

	assert.Equal(t, "Company Christmas", response.PublicHoliday)
	assert.Equal(t, "public_holiday: Company Christmas", response.Award.Breakdown[0].PenaltyApplied)
}

func TestCalculateAward_NilCalendar(t *testing.T) {
	christmas := time.Date(2025, 12, 25, 8, 0, 0, 0, time.UTC)

	response, err := CalculateAward(context.Background(), nil, nil, nil, zap.NewNop(), awardRequest(christmas, 8))
	require.NoError(t, err)

	assert.Empty(t, response.PublicHoliday)
	assert.Equal(t, 240.0, response.Award.TotalCost)
}

func TestCalculateAward_RecordsBreakViolation(t *testing.T) {
	recorder := metrics.NewRecorder()
	start := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	previousEnd := start.Add(-6 * time.Hour)
	request := awardRequest(start, 8)
	request.PreviousShiftEnd = &previousEnd

	response, err := CalculateAward(context.Background(), nil, nil, recorder, zap.NewNop(), request)
	require.NoError(t, err)

	require.NotNil(t, response.Award.BreakCompliance)
	assert.False(t, response.Award.BreakCompliance.Compliant)
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.BreakViolations.WithLabelValues("award")))
}

func TestCalculateAward_InvalidRequests(t *testing.T) {
	start := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*AwardRequest)
	}{
		{"end before start", func(r *AwardRequest) { r.End = r.Start.Add(-time.Hour) }},
		{"end equals start", func(r *AwardRequest) { r.End = r.Start }},
		{"level too high", func(r *AwardRequest) { r.WorkerLevel = 5 }},
		{"level missing", func(r *AwardRequest) { r.WorkerLevel = 0 }},
		{"zero rate", func(r *AwardRequest) { r.BaseHourlyRate = 0 }},
		{"missing start", func(r *AwardRequest) { r.Start = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := awardRequest(start, 8)
			tt.mutate(request)

			_, err := CalculateAward(context.Background(), nil, nil, nil, zap.NewNop(), request)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
		})
	}
}
