package domain

var (
	MessageSuccessGetDayReport   = "day report retrieved successfully"
	MessageSuccessGetWeekReport  = "week report retrieved successfully"
	MessageSuccessGetMonthReport = "month report retrieved successfully"

	MessageFailedGetDayReport   = "failed to retrieve day report"
	MessageFailedGetWeekReport  = "failed to retrieve week report"
	MessageFailedGetMonthReport = "failed to retrieve month report"
)

type (
	DayReportResponse struct {
		Date     string  `json:"date"`
		Calories float64 `json:"calories"`
	}

	WeekReportResponse struct {
		WeekStart   string              `json:"week_start"`
		AvgCalories float64             `json:"avg_calories"`
		Days        []DayReportResponse `json:"days"`
	}

	MonthWeekSummary struct {
		WeekStart   string  `json:"week_start"`
		AvgCalories float64 `json:"avg_calories"`
	}

	MonthReportResponse struct {
		MonthStart string             `json:"month_start"`
		Weeks      []MonthWeekSummary `json:"weeks"`
	}
)
