package services

import (
	"context"
	"law_folder_app_go/models"
	"law_folder_app_go/services/i18n"
	"log"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	folderActivityDays = 30
	areaDivisionTop    = 4
	folderStatusTop    = 3
)

// Section is one dashboard widget. Demo is set when Data holds the
// fallback dataset instead of live figures.
type Section[T any] struct {
	Data T    `json:"data"`
	Demo bool `json:"is_demo"`
}

// AreaShare is one slice of the area-of-law split
type AreaShare struct {
	Area       string  `json:"area"`
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatusShare is one slice of the folder status split
type StatusShare struct {
	Status     string  `json:"status"`
	Label      string  `json:"label"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FolderActivity is the active count plus daily movements
type FolderActivity struct {
	Active  int64        `json:"active"`
	History []DailyCount `json:"history"`
}

// DashboardData is the whole dashboard payload
type DashboardData struct {
	ActiveFolders   Section[DashboardFolders] `json:"active_folders"`
	AreaDivision    Section[[]AreaShare]      `json:"area_division"`
	FolderStatus    Section[[]StatusShare]    `json:"folder_status"`
	FolderActivity  Section[FolderActivity]   `json:"folder_activity"`
	RequestsBilling Section[RequestsBilling]  `json:"requests_billing"`
	Hearings        Section[HearingSummary]   `json:"hearings"`
	Birthdays       Section[[]Birthday]       `json:"birthdays"`
	Tasks           Section[TaskStats]        `json:"tasks"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// DashboardService composes the per-domain services into the dashboard
type DashboardService struct {
	folders   *FolderService
	movements *MovementService
	tasks     *TaskService
	hearings  *HearingService
	clients   *ClientService
	billing   *BillingService
	now       func() time.Time
}

// NewDashboardService wires every sub-service onto the same store
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		folders:   NewFolderService(db),
		movements: NewMovementService(db),
		tasks:     NewTaskService(db),
		hearings:  NewHearingService(db),
		clients:   NewClientService(db),
		billing:   NewBillingService(db),
		now:       time.Now,
	}
}

// resolve keeps live data unless the query failed or came back empty
func resolve[T any](widget string, data T, err error, empty func(T) bool, fallback func() T) Section[T] {
	if err != nil {
		log.Printf("[WARNING] Dashboard %s failed, using demo data: %v", widget, err)
		return Section[T]{Data: fallback(), Demo: true}
	}
	if empty(data) {
		return Section[T]{Data: fallback(), Demo: true}
	}
	return Section[T]{Data: data}
}

// GetDashboardData fans out to every widget and waits for all of them.
// It never fails: each widget falls back to demo data on its own.
func (s *DashboardService) GetDashboardData(ctx context.Context) *DashboardData {
	now := s.now()
	data := &DashboardData{GeneratedAt: now}

	// branches never return errors, so no branch cancels another
	var g errgroup.Group
	g.Go(func() error {
		data.ActiveFolders = s.getActiveFoldersStats(ctx, now)
		return nil
	})
	g.Go(func() error {
		data.AreaDivision = s.getAreaDivision(ctx)
		return nil
	})
	g.Go(func() error {
		data.FolderStatus = s.getFolderStatus(ctx)
		return nil
	})
	g.Go(func() error {
		data.FolderActivity = s.getFolderActivity(ctx, now)
		return nil
	})
	g.Go(func() error {
		data.RequestsBilling = s.getRequestsBilling(ctx, now)
		return nil
	})
	g.Go(func() error {
		data.Hearings = s.getHearings(ctx, now)
		return nil
	})
	g.Go(func() error {
		data.Birthdays = s.getBirthdays(ctx, now)
		return nil
	})
	g.Go(func() error {
		data.Tasks = s.getTasks(ctx)
		return nil
	})
	_ = g.Wait()

	return data
}

func (s *DashboardService) getActiveFoldersStats(ctx context.Context, now time.Time) Section[DashboardFolders] {
	var live DashboardFolders
	stats, err := s.folders.GetDashboardFolders(ctx)
	if stats != nil {
		live = *stats
	}
	return resolve("active_folders", live, err,
		func(d DashboardFolders) bool { return d.Active == 0 },
		func() DashboardFolders { return fallbackActiveFolders(now) })
}

func (s *DashboardService) getAreaDivision(ctx context.Context) Section[[]AreaShare] {
	counts, err := s.folders.CountByArea(ctx)
	var shares []AreaShare
	if err == nil {
		shares = areaShares(counts, areaDivisionTop)
	}
	section := resolve("area_division", shares, err,
		func(d []AreaShare) bool { return len(d) == 0 },
		func() []AreaShare { return append([]AreaShare(nil), FallbackAreaDivision...) })
	for i := range section.Data {
		section.Data[i].Label = i18n.AreaLabel(ctx, section.Data[i].Area)
	}
	return section
}

// areaShares keeps the largest areas, with percentages of the whole set
func areaShares(counts []AreaCount, top int) []AreaShare {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return nil
	}

	shares := make([]AreaShare, 0, top)
	for _, c := range counts {
		if len(shares) == top {
			break
		}
		shares = append(shares, AreaShare{Area: c.Area, Count: c.Count, Percentage: percentage(c.Count, total)})
	}
	return shares
}

func (s *DashboardService) getFolderStatus(ctx context.Context) Section[[]StatusShare] {
	counts, err := s.folders.CountByStatus(ctx)
	var shares []StatusShare
	if err == nil {
		shares = statusShares(counts, folderStatusTop)
	}
	section := resolve("folder_status", shares, err,
		func(d []StatusShare) bool { return len(d) == 0 },
		func() []StatusShare { return append([]StatusShare(nil), FallbackFolderStatus...) })
	for i := range section.Data {
		section.Data[i].Label = i18n.StatusLabel(ctx, section.Data[i].Status)
	}
	return section
}

// statusShares walks statuses in display order and keeps the first
// present ones, with percentages of the whole set
func statusShares(counts []StatusCount, top int) []StatusShare {
	byStatus := make(map[string]int64, len(counts))
	var total int64
	for _, c := range counts {
		byStatus[c.Status] = c.Count
		total += c.Count
	}
	if total == 0 {
		return nil
	}

	shares := make([]StatusShare, 0, top)
	for _, status := range models.FolderStatuses {
		if len(shares) == top {
			break
		}
		if n := byStatus[status]; n > 0 {
			shares = append(shares, StatusShare{Status: status, Count: n, Percentage: percentage(n, total)})
		}
	}
	return shares
}

func (s *DashboardService) getFolderActivity(ctx context.Context, now time.Time) Section[FolderActivity] {
	var activity FolderActivity

	var g errgroup.Group
	g.Go(func() error {
		var err error
		activity.Active, err = s.folders.CountActive(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		activity.History, err = s.movements.DailyCounts(ctx, folderActivityDays)
		return err
	})
	err := g.Wait()

	return resolve("folder_activity", activity, err,
		func(a FolderActivity) bool {
			if a.Active > 0 {
				return false
			}
			for _, d := range a.History {
				if d.Count > 0 {
					return false
				}
			}
			return true
		},
		func() FolderActivity { return fallbackFolderActivity(now) })
}

func (s *DashboardService) getRequestsBilling(ctx context.Context, now time.Time) Section[RequestsBilling] {
	var live RequestsBilling
	rb, err := s.billing.GetRequestsBilling(ctx)
	if rb != nil {
		live = *rb
	}
	return resolve("requests_billing", live, err,
		func(r RequestsBilling) bool { return r.IsEmpty() },
		func() RequestsBilling { return fallbackRequestsBilling(now) })
}

func (s *DashboardService) getHearings(ctx context.Context, now time.Time) Section[HearingSummary] {
	var live HearingSummary
	summary, err := s.hearings.GetSummary(ctx)
	if summary != nil {
		live = *summary
	}
	return resolve("hearings", live, err,
		func(h HearingSummary) bool {
			return h.Today == 0 && h.ThisWeek == 0 && len(h.Upcoming) == 0 &&
				h.DeadlinesThisWeek == 0 && h.OverdueTasks == 0
		},
		func() HearingSummary { return fallbackHearings(now) })
}

func (s *DashboardService) getBirthdays(ctx context.Context, now time.Time) Section[[]Birthday] {
	birthdays, err := s.clients.BirthdaysInMonth(ctx, now.Month())
	return resolve("birthdays", birthdays, err,
		func(b []Birthday) bool { return len(b) == 0 },
		func() []Birthday { return fallbackBirthdays(now) })
}

func (s *DashboardService) getTasks(ctx context.Context) Section[TaskStats] {
	var live TaskStats
	stats, err := s.tasks.GetStats(ctx)
	if stats != nil {
		live = *stats
	}
	return resolve("tasks", live, err,
		func(t TaskStats) bool { return t.Total == 0 },
		fallbackTasks)
}

// percentage rounds part/total to one decimal place
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
