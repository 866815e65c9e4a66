package services

import (
	"context"
	"law_folder_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClientService(db)
	ctx := context.Background()

	client, err := svc.Create(ctx, CreateClientInput{Name: " ACME Ltda ", Email: " Legal@ACME.test "})
	require.NoError(t, err)
	assert.Equal(t, "ACME Ltda", client.Name)
	assert.Equal(t, "legal@acme.test", client.Email)
	assert.Equal(t, models.ClientTypeIndividual, client.Type)

	got, err := svc.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.Name, got.Name)

	_, err = svc.GetClient(ctx, "missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestBirthdaysInMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClientService(db)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	birth := func(y int, m time.Month, d int) *time.Time {
		b := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &b
	}
	for _, in := range []CreateClientInput{
		{Name: "Zoe", BirthDate: birth(1990, time.October, 3)},
		{Name: "Ana", BirthDate: birth(1980, time.October, 3)},
		{Name: "Bruno", BirthDate: birth(1975, time.October, 28)},
		{Name: "Carla", BirthDate: birth(1992, time.November, 1)},
		{Name: "No birth date"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	birthdays, err := svc.CurrentMonthBirthdays(ctx)
	require.NoError(t, err)
	require.Len(t, birthdays, 3)
	assert.Equal(t, "Ana", birthdays[0].Name)
	assert.Equal(t, "Zoe", birthdays[1].Name)
	assert.Equal(t, "Bruno", birthdays[2].Name)
	assert.Equal(t, time.Date(2026, 10, 28, 0, 0, 0, 0, time.UTC), birthdays[2].Date)

	november, err := svc.BirthdaysInMonth(ctx, time.November)
	require.NoError(t, err)
	require.Len(t, november, 1)
	assert.Equal(t, "Carla", november[0].Name)
}
