package services

import (
	"context"
	_ "embed"
	"fmt"
	appdb "law_folder_app_go/db"
	"law_folder_app_go/models"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures/demo.yaml
var demoFixtures []byte

// DemoPassword is the password of every seeded lawyer
const DemoPassword = "DemoPass123!"

type demoDataset struct {
	Lawyers []struct {
		FullName string `yaml:"full_name"`
		Email    string `yaml:"email"`
		Role     string `yaml:"role"`
	} `yaml:"lawyers"`
	Clients []struct {
		Key       string `yaml:"key"`
		Name      string `yaml:"name"`
		Document  string `yaml:"document"`
		Type      string `yaml:"type"`
		Email     string `yaml:"email"`
		Phone     string `yaml:"phone"`
		BirthDate string `yaml:"birth_date"`
	} `yaml:"clients"`
	Folders []struct {
		Code             string  `yaml:"code"`
		Title            string  `yaml:"title"`
		Area             string  `yaml:"area"`
		Status           string  `yaml:"status"`
		Client           string  `yaml:"client"`
		Lawyer           string  `yaml:"lawyer"`
		Court            string  `yaml:"court"`
		CaseNumber       string  `yaml:"case_number"`
		OpposingParty    string  `yaml:"opposing_party"`
		CaseValue        float64 `yaml:"case_value"`
		Fees             float64 `yaml:"fees"`
		CreatedMonthsAgo int     `yaml:"created_months_ago"`
		Favorite         bool    `yaml:"favorite"`
	} `yaml:"folders"`
	Hearings []struct {
		Folder   string `yaml:"folder"`
		InDays   int    `yaml:"in_days"`
		Hour     int    `yaml:"hour"`
		Type     string `yaml:"type"`
		Location string `yaml:"location"`
	} `yaml:"hearings"`
	Tasks []struct {
		Folder    string `yaml:"folder"`
		Title     string `yaml:"title"`
		Status    string `yaml:"status"`
		DueInDays int    `yaml:"due_in_days"`
	} `yaml:"tasks"`
	Movements []struct {
		Folder      string `yaml:"folder"`
		Description string `yaml:"description"`
		DaysAgo     int    `yaml:"days_ago"`
	} `yaml:"movements"`
	Invoices []struct {
		Client    string  `yaml:"client"`
		Folder    string  `yaml:"folder"`
		Amount    float64 `yaml:"amount"`
		Status    string  `yaml:"status"`
		MonthsAgo int     `yaml:"months_ago"`
	} `yaml:"invoices"`
	Requests []struct {
		Client  string `yaml:"client"`
		Folder  string `yaml:"folder"`
		Subject string `yaml:"subject"`
		Status  string `yaml:"status"`
	} `yaml:"requests"`
}

// SeedAdminFromEnv creates an admin user from ADMIN_EMAIL / ADMIN_PASSWORD.
// It does nothing when the variables are unset or the email is taken.
func SeedAdminFromEnv(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")

	if email == "" || password == "" {
		return nil
	}
	if name == "" {
		name = "Administrator"
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[SEED] User with email %s already exists, skipping admin seed", email)
		return nil
	}

	if _, err := CreateUser(db, name, email, password, models.RoleAdmin); err != nil {
		return err
	}

	log.Printf("[SEED] Created admin user: %s", email)
	return nil
}

// CreateUser registers an active user after checking the password policy
func CreateUser(db *gorm.DB, fullName, email, password, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// SeedDemoData loads the embedded demo dataset, with dates relative to now.
// It is skipped when the store already holds folders.
func SeedDemoData(ctx context.Context, db *gorm.DB, now time.Time) error {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Folder{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count folders: %w", err)
	}
	if existing > 0 {
		log.Printf("[SEED] %d folders already present, skipping demo data", existing)
		return nil
	}

	var data demoDataset
	if err := yaml.Unmarshal(demoFixtures, &data); err != nil {
		return fmt.Errorf("failed to parse demo fixtures: %w", err)
	}

	passwordHash, err := HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthsAgo := func(n int) time.Time {
		return time.Date(now.Year(), now.Month()-time.Month(n), 10, 12, 0, 0, 0, now.Location())
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lawyers := map[string]string{}
		for _, l := range data.Lawyers {
			user := models.User{FullName: l.FullName, Email: l.Email, Password: passwordHash, Role: l.Role, IsActive: true}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("lawyer %s: %w", l.Email, err)
			}
			lawyers[l.Email] = user.ID
		}

		clients := map[string]string{}
		for _, c := range data.Clients {
			client := models.Client{Name: c.Name, Document: c.Document, Type: c.Type, Email: c.Email, Phone: c.Phone}
			if c.BirthDate != "" {
				raw := strings.ReplaceAll(c.BirthDate, "{month}", fmt.Sprintf("%02d", int(now.Month())))
				birth, err := ParseDate(raw)
				if err != nil {
					return fmt.Errorf("client %s: %w", c.Key, err)
				}
				client.BirthDate = &birth
			}
			if err := tx.Create(&client).Error; err != nil {
				return fmt.Errorf("client %s: %w", c.Key, err)
			}
			clients[c.Key] = client.ID
		}

		folders := map[string]string{}
		for _, f := range data.Folders {
			folder := models.Folder{
				Code:          f.Code,
				Title:         f.Title,
				Area:          f.Area,
				Status:        f.Status,
				ClientID:      clients[f.Client],
				Court:         f.Court,
				CaseNumber:    f.CaseNumber,
				OpposingParty: f.OpposingParty,
				CaseValue:     f.CaseValue,
				Fees:          f.Fees,
				IsFavorite:    f.Favorite,
				CreatedAt:     monthsAgo(f.CreatedMonthsAgo),
			}
			if id, ok := lawyers[f.Lawyer]; ok {
				folder.ResponsibleLawyerID = &id
			}
			if err := tx.Omit("Client", "ResponsibleLawyer").Create(&folder).Error; err != nil {
				return fmt.Errorf("folder %s: %w", f.Code, err)
			}
			folders[f.Code] = folder.ID
		}

		for _, h := range data.Hearings {
			at := day.AddDate(0, 0, h.InDays).Add(time.Duration(h.Hour) * time.Hour)
			hearing := models.Hearing{FolderID: folders[h.Folder], ScheduledAt: at, Type: h.Type, Location: h.Location}
			if err := tx.Create(&hearing).Error; err != nil {
				return fmt.Errorf("hearing for %s: %w", h.Folder, err)
			}
			if at.After(now) {
				if err := tx.Model(&models.Folder{}).
					Where("id = ? AND (next_hearing IS NULL OR next_hearing > ?)", hearing.FolderID, at).
					Update("next_hearing", at).Error; err != nil {
					return err
				}
			}
		}

		for _, tk := range data.Tasks {
			due := day.AddDate(0, 0, tk.DueInDays).Add(18 * time.Hour)
			folderID := folders[tk.Folder]
			task := models.Task{FolderID: &folderID, Title: tk.Title, Status: tk.Status, DueDate: &due}
			if tk.Status == models.TaskStatusCompleted {
				task.CompletedAt = &due
			}
			if err := tx.Create(&task).Error; err != nil {
				return fmt.Errorf("task %q: %w", tk.Title, err)
			}
		}

		for _, m := range data.Movements {
			movement := models.Movement{
				FolderID:    folders[m.Folder],
				Description: m.Description,
				OccurredAt:  now.AddDate(0, 0, -m.DaysAgo),
				Source:      "seed",
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("movement on %s: %w", m.Folder, err)
			}
		}

		for _, inv := range data.Invoices {
			invoice := models.Invoice{ClientID: clients[inv.Client], Amount: inv.Amount, Status: inv.Status, IssuedAt: monthsAgo(inv.MonthsAgo)}
			if id, ok := folders[inv.Folder]; ok {
				invoice.FolderID = &id
			}
			if inv.Status == models.InvoiceStatusPaid {
				paid := invoice.IssuedAt.AddDate(0, 0, 5)
				invoice.PaidAt = &paid
			}
			if err := tx.Create(&invoice).Error; err != nil {
				return fmt.Errorf("invoice for %s: %w", inv.Client, err)
			}
		}

		for _, r := range data.Requests {
			request := models.ClientRequest{ClientID: clients[r.Client], Subject: r.Subject, Status: r.Status}
			if id, ok := folders[r.Folder]; ok {
				request.FolderID = &id
			}
			if err := tx.Create(&request).Error; err != nil {
				return fmt.Errorf("request %q: %w", r.Subject, err)
			}
		}

		log.Printf("[SEED] Loaded %d lawyers, %d clients, %d folders", len(data.Lawyers), len(data.Clients), len(data.Folders))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	return appdb.RefreshViews(ctx, db)
}
