package services

import (
	"context"
	"errors"
	"fmt"
	"law_folder_app_go/models"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

// Birthday is a client whose birthday falls in the requested month
type Birthday struct {
	ClientID string    `json:"client_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Day      int       `json:"day"`
	Date     time.Time `json:"date"`
}

// CreateClientInput holds the fields accepted when registering a client
type CreateClientInput struct {
	Name      string
	Document  string
	Type      string
	Email     string
	Phone     string
	BirthDate *time.Time
}

// ClientService manages clients
type ClientService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewClientService creates a client service
func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db, now: time.Now}
}

// Create registers a client
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*models.Client, error) {
	client := models.Client{
		Name:      strings.TrimSpace(input.Name),
		Document:  strings.TrimSpace(input.Document),
		Type:      input.Type,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     input.Phone,
		BirthDate: input.BirthDate,
	}
	if client.Type == "" {
		client.Type = models.ClientTypeIndividual
	}
	if err := s.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

// GetClient returns a client by id
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

// BirthdaysInMonth lists clients born in the given month, by day of month
func (s *ClientService) BirthdaysInMonth(ctx context.Context, month time.Month) ([]Birthday, error) {
	var clients []models.Client
	err := s.db.WithContext(ctx).
		Where("birth_date IS NOT NULL").
		Where("strftime('%m', birth_date) = ?", fmt.Sprintf("%02d", int(month))).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch birthdays: %w", err)
	}

	year := s.now().Year()
	birthdays := make([]Birthday, 0, len(clients))
	for _, c := range clients {
		day := c.BirthDate.Day()
		birthdays = append(birthdays, Birthday{
			ClientID: c.ID,
			Name:     c.Name,
			Email:    c.Email,
			Day:      day,
			Date:     time.Date(year, month, day, 0, 0, 0, 0, c.BirthDate.Location()),
		})
	}
	sortBirthdays(birthdays)
	return birthdays, nil
}

// CurrentMonthBirthdays lists this month's birthdays
func (s *ClientService) CurrentMonthBirthdays(ctx context.Context) ([]Birthday, error) {
	return s.BirthdaysInMonth(ctx, s.now().Month())
}

func sortBirthdays(b []Birthday) {
	sort.Slice(b, func(i, j int) bool {
		if b[i].Day != b[j].Day {
			return b[i].Day < b[j].Day
		}
		return b[i].Name < b[j].Name
	})
}
