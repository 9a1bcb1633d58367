package food

import (
	"Household-Food-Tracker/domain"
	"context"
	"time"
)

type (
	ReportService interface {
		GetDayReport(ctx context.Context, date string) (domain.DayReportResponse, error)
		GetWeekReport(ctx context.Context, weekStart string) (domain.WeekReportResponse, error)
		GetMonthReport(ctx context.Context, monthStart string) (domain.MonthReportResponse, error)
	}

	reportService struct {
		foodRepository FoodRepository
	}
)

func NewReportService(foodRepository FoodRepository) ReportService {
	return &reportService{foodRepository: foodRepository}
}

// WeekStartsInMonth lists the Mondays of every week that overlaps the
// month containing date. The first Monday may fall in the previous
// month.
func WeekStartsInMonth(date time.Time) []time.Time {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	offset := (int(monthStart.Weekday()) + 6) % 7
	monday := monthStart.AddDate(0, 0, -offset)

	var starts []time.Time
	for !monday.After(monthEnd) {
		starts = append(starts, monday)
		monday = monday.AddDate(0, 0, 7)
	}
	return starts
}

func (s *reportService) SumDayCalories(ctx context.Context, date time.Time) (float64, error) {
	return s.foodRepository.SumMealCalories(ctx, date)
}

// AvgWeekCalories averages over all seven days of the week, counting
// days with no meals as zero.
func (s *reportService) AvgWeekCalories(ctx context.Context, weekStart time.Time) (float64, error) {
	var total float64
	for i := 0; i < 7; i++ {
		day, err := s.foodRepository.SumMealCalories(ctx, weekStart.AddDate(0, 0, i))
		if err != nil {
			return 0, err
		}
		total += day
	}
	return total / 7, nil
}

func (s *reportService) GetDayReport(ctx context.Context, date string) (domain.DayReportResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.DayReportResponse{}, domain.ErrInvalidDate
	}

	calories, err := s.SumDayCalories(ctx, day)
	if err != nil {
		return domain.DayReportResponse{}, err
	}
	return domain.DayReportResponse{
		Date:     day.Format("2006-01-02"),
		Calories: calories,
	}, nil
}

func (s *reportService) GetWeekReport(ctx context.Context, weekStart string) (domain.WeekReportResponse, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return domain.WeekReportResponse{}, domain.ErrInvalidDate
	}

	res := domain.WeekReportResponse{WeekStart: start.Format("2006-01-02")}
	var total float64
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		calories, err := s.foodRepository.SumMealCalories(ctx, day)
		if err != nil {
			return domain.WeekReportResponse{}, err
		}
		total += calories
		res.Days = append(res.Days, domain.DayReportResponse{
			Date:     day.Format("2006-01-02"),
			Calories: calories,
		})
	}
	res.AvgCalories = total / 7
	return res, nil
}

func (s *reportService) GetMonthReport(ctx context.Context, monthStart string) (domain.MonthReportResponse, error) {
	start, err := time.Parse("2006-01-02", monthStart)
	if err != nil {
		return domain.MonthReportResponse{}, domain.ErrInvalidDate
	}

	res := domain.MonthReportResponse{
		MonthStart: time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()).Format("2006-01-02"),
	}
	for _, weekStart := range WeekStartsInMonth(start) {
		avg, err := s.AvgWeekCalories(ctx, weekStart)
		if err != nil {
			return domain.MonthReportResponse{}, err
		}
		res.Weeks = append(res.Weeks, domain.MonthWeekSummary{
			WeekStart:   weekStart.Format("2006-01-02"),
			AvgCalories: avg,
		})
	}
	return res, nil
}
