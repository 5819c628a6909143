package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
)

const (
	baselineWindowDays = 28
	baselineMinPoints  = 3
)

// Baselines are rolling statistics over the trailing window, excluding the
// target date itself. A signal with fewer than baselineMinPoints non-null
// days yields no baseline.
type Baselines struct {
	HRVMean   *float64
	HRVStd    *float64
	RHRMean   *float64
	SleepMean *float64
}

type BaselineService interface {
	Calculate(ctx context.Context, userID uuid.UUID, targetDate time.Time) (Baselines, error)
	UpdateDailyMetric(ctx context.Context, userID uuid.UUID, targetDate time.Time) error
}

type baselineService struct {
	db         *gorm.DB
	log        *logger.Logger
	metricRepo repos.DailyMetricRepo
}

func NewBaselineService(db *gorm.DB, log *logger.Logger, metricRepo repos.DailyMetricRepo) BaselineService {
	serviceLog := log.With("service", "BaselineService")
	return &baselineService{db: db, log: serviceLog, metricRepo: metricRepo}
}

func (bs *baselineService) Calculate(ctx context.Context, userID uuid.UUID, targetDate time.Time) (Baselines, error) {
	windowStart := targetDate.AddDate(0, 0, -baselineWindowDays)
	windowEnd := targetDate.AddDate(0, 0, -1)

	metrics, err := bs.metricRepo.GetByUserBetween(ctx, nil, userID, windowStart, windowEnd)
	if err != nil {
		return Baselines{}, err
	}

	var hrv, rhr, sleep []float64
	for _, m := range metrics {
		if m.HRVRMSSD != nil {
			hrv = append(hrv, *m.HRVRMSSD)
		}
		if m.RestingHR != nil {
			rhr = append(rhr, float64(*m.RestingHR))
		}
		if m.SleepDurationMinutes != nil {
			sleep = append(sleep, float64(*m.SleepDurationMinutes))
		}
	}

	return Baselines{
		HRVMean:   baselineMean(hrv),
		HRVStd:    baselineStd(hrv),
		RHRMean:   baselineMean(rhr),
		SleepMean: baselineMean(sleep),
	}, nil
}

// UpdateDailyMetric writes the freshly computed baselines onto the target
// day's record. A missing record is not an error; there is nothing to
// annotate yet.
func (bs *baselineService) UpdateDailyMetric(ctx context.Context, userID uuid.UUID, targetDate time.Time) error {
	baselines, err := bs.Calculate(ctx, userID, targetDate)
	if err != nil {
		return err
	}

	metric, err := bs.metricRepo.GetByUserAndDate(ctx, nil, userID, targetDate)
	if err != nil {
		return err
	}
	if metric == nil {
		return nil
	}

	metric.HRVBaselineMean = baselines.HRVMean
	metric.HRVBaselineStd = baselines.HRVStd
	metric.RHRBaselineMean = baselines.RHRMean
	metric.SleepBaselineMean = baselines.SleepMean

	if _, err := bs.metricRepo.Update(ctx, nil, metric); err != nil {
		bs.log.Warn("Update baselines failed", "error", err)
		return err
	}
	return nil
}

func baselineMean(values []float64) *float64 {
	if len(values) < baselineMinPoints {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := round2(sum / float64(len(values)))
	return &mean
}

// baselineStd is the sample standard deviation.
func baselineStd(values []float64) *float64 {
	if len(values) < baselineMinPoints {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)

	std := round2(math.Sqrt(variance))
	return &std
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
