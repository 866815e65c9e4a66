package services

import (
	"law_folder_app_go/models"
	"time"
)

// Demonstration data shown by a dashboard widget whose live query failed or
// came back empty. Values are fixed; only date labels follow the clock.
const (
	FallbackActiveFolders = 24
	FallbackNewThisMonth  = 5

	FallbackRequestsTotal = 18
	FallbackRequestsOpen  = 7

	FallbackHearingsToday     = 1
	FallbackHearingsThisWeek  = 4
	FallbackDeadlinesThisWeek = 6
	FallbackOverdueTasks      = 2

	FallbackTasksTotal      = 12
	FallbackTasksPending    = 5
	FallbackTasksInProgress = 3
	FallbackTasksCompleted  = 4
	FallbackTasksOverdue    = 2
)

// FallbackFolderHistory is the six-month folder curve, oldest first
var FallbackFolderHistory = [StatsHistoryMonths]int64{12, 15, 14, 18, 21, 24}

// FallbackActivity is the 30-day movement curve, oldest first
var FallbackActivity = [folderActivityDays]int64{
	3, 5, 2, 4, 6, 1, 0, 4, 7, 3,
	5, 2, 6, 8, 2, 0, 1, 5, 6, 4,
	3, 7, 5, 2, 0, 1, 6, 4, 5, 3,
}

// FallbackAreaDivision is the demo top-4 area split
var FallbackAreaDivision = []AreaShare{
	{Area: models.AreaLabor, Count: 7, Percentage: 35},
	{Area: models.AreaCivilLitigation, Count: 6, Percentage: 30},
	{Area: models.AreaTax, Count: 4, Percentage: 20},
	{Area: models.AreaFamily, Count: 3, Percentage: 15},
}

// FallbackFolderStatus is the demo status split
var FallbackFolderStatus = []StatusShare{
	{Status: models.FolderStatusActive, Count: 12, Percentage: 60},
	{Status: models.FolderStatusPending, Count: 5, Percentage: 25},
	{Status: models.FolderStatusCompleted, Count: 3, Percentage: 15},
}

// FallbackRequestsByStatus is the demo requests split
var FallbackRequestsByStatus = []models.RequestsByStatusView{
	{Status: models.RequestStatusOpen, Total: 4},
	{Status: models.RequestStatusInReview, Total: 3},
	{Status: models.RequestStatusAnswered, Total: 6},
	{Status: models.RequestStatusClosed, Total: 5},
}

// FallbackBillingMonths holds invoiced, received and pending per month, oldest first
var FallbackBillingMonths = [billingHistoryMonths][3]float64{
	{18500, 15200, 3300},
	{21000, 17800, 3200},
	{19750, 16400, 3350},
	{23400, 20100, 3300},
	{25200, 21900, 3300},
	{27800, 22600, 5200},
}

// FallbackBirthdays are the demo birthday names and days of month
var FallbackBirthdays = []struct {
	Name string
	Day  int
}{
	{Name: "Maria Silva", Day: 3},
	{Name: "João Pereira", Day: 14},
	{Name: "Ana Costa", Day: 27},
}

// FallbackUpcomingHearings are the demo agenda entries, as offsets from today
var FallbackUpcomingHearings = []struct {
	Code     string
	Title    string
	Type     string
	Location string
	InDays   int
	Hour     int
}{
	{Code: "DEMO-0001", Title: "Labor claim - overtime", Type: models.HearingTypeConciliation, Location: "2nd Labor Court", InDays: 0, Hour: 14},
	{Code: "DEMO-0002", Title: "Contract termination", Type: models.HearingTypeInstruction, Location: "5th Civil Court", InDays: 2, Hour: 10},
	{Code: "DEMO-0003", Title: "Tax assessment appeal", Type: models.HearingTypeJudgment, Location: "Federal Tax Court", InDays: 5, Hour: 9},
}

func fallbackActiveFolders(now time.Time) DashboardFolders {
	history := make([]HistoryPoint, StatsHistoryMonths)
	for i := range history {
		month := time.Date(now.Year(), now.Month()-time.Month(StatsHistoryMonths-1-i), 1, 0, 0, 0, 0, now.Location())
		history[i] = HistoryPoint{Month: month.Format("2006-01"), Value: FallbackFolderHistory[i]}
	}
	return DashboardFolders{
		Active:       FallbackActiveFolders,
		NewThisMonth: FallbackNewThisMonth,
		History:      history,
	}
}

func fallbackFolderActivity(now time.Time) FolderActivity {
	today := now.UTC()
	since := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(folderActivityDays - 1))
	history := make([]DailyCount, folderActivityDays)
	for i := range history {
		history[i] = DailyCount{Date: since.AddDate(0, 0, i).Format("2006-01-02"), Count: FallbackActivity[i]}
	}
	return FolderActivity{Active: FallbackActiveFolders, History: history}
}

func fallbackRequestsBilling(now time.Time) RequestsBilling {
	rb := RequestsBilling{
		Requests: RequestsSummary{
			Total:    FallbackRequestsTotal,
			Open:     FallbackRequestsOpen,
			ByStatus: append([]models.RequestsByStatusView(nil), FallbackRequestsByStatus...),
		},
	}
	for i, m := range FallbackBillingMonths {
		month := time.Date(now.Year(), now.Month()-time.Month(billingHistoryMonths-1-i), 1, 0, 0, 0, 0, now.Location())
		rb.Billing.Months = append(rb.Billing.Months, models.BillingMonthlyView{
			Month:    month.Format("2006-01"),
			Invoiced: m[0],
			Received: m[1],
			Pending:  m[2],
		})
		rb.Billing.Invoiced += m[0]
		rb.Billing.Received += m[1]
		rb.Billing.Pending += m[2]
	}
	return rb
}

func fallbackHearings(now time.Time) HearingSummary {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcoming := make([]UpcomingHearing, 0, len(FallbackUpcomingHearings))
	for _, h := range FallbackUpcomingHearings {
		upcoming = append(upcoming, UpcomingHearing{
			FolderCode:  h.Code,
			FolderTitle: h.Title,
			ScheduledAt: day.AddDate(0, 0, h.InDays).Add(time.Duration(h.Hour) * time.Hour),
			Type:        h.Type,
			Location:    h.Location,
		})
	}
	return HearingSummary{
		Today:             FallbackHearingsToday,
		ThisWeek:          FallbackHearingsThisWeek,
		Upcoming:          upcoming,
		DeadlinesThisWeek: FallbackDeadlinesThisWeek,
		OverdueTasks:      FallbackOverdueTasks,
	}
}

func fallbackBirthdays(now time.Time) []Birthday {
	birthdays := make([]Birthday, 0, len(FallbackBirthdays))
	for _, b := range FallbackBirthdays {
		birthdays = append(birthdays, Birthday{
			Name: b.Name,
			Day:  b.Day,
			Date: time.Date(now.Year(), now.Month(), b.Day, 0, 0, 0, 0, now.Location()),
		})
	}
	return birthdays
}

func fallbackTasks() TaskStats {
	return TaskStats{
		Total:      FallbackTasksTotal,
		Pending:    FallbackTasksPending,
		InProgress: FallbackTasksInProgress,
		Completed:  FallbackTasksCompleted,
		Overdue:    FallbackTasksOverdue,
	}
}
