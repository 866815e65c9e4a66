package handlers

import (
	"fmt"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFoldersHandler(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	client := createTestClient(t, api.db, "Maria Silva")

	createTestFolder(t, api.db, client.ID, func(f *models.Folder) {
		f.Area = models.AreaLabor
		f.Title = "Overtime claim"
		f.IsFavorite = true
	})
	createTestFolder(t, api.db, client.ID, func(f *models.Folder) {
		f.Area = models.AreaLabor
		f.Status = models.FolderStatusPending
	})
	createTestFolder(t, api.db, client.ID, func(f *models.Folder) {
		f.Area = models.AreaTax
		f.IsDeleted = true
	})

	t.Run("AllLive", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, "/api/folders", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[services.PaginatedFolders](t, rec)
		assert.Equal(t, int64(2), page.Meta.Total)
		assert.Len(t, page.Data, 2)
		require.NotNil(t, page.Data[0].Client)
		assert.Equal(t, "Maria Silva", page.Data[0].Client.Name)
	})

	t.Run("Filters", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, "/api/folders?area=labor&status=active&is_favorite=true&search=OVERTIME", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[services.PaginatedFolders](t, rec)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Overtime claim", page.Data[0].Title)
	})

	t.Run("DateRange", func(t *testing.T) {
		now := time.Now()
		from := now.AddDate(0, 0, -1).Format(dateLayout)
		to := now.AddDate(0, 0, 1).Format(dateLayout)
		rec := api.request(t, http.MethodGet, "/api/folders?date_from="+from+"&date_to="+to, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(2), decode[services.PaginatedFolders](t, rec).Meta.Total)
	})

	t.Run("Pagination", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, "/api/folders?page=2&limit=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[services.PaginatedFolders](t, rec)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 2, page.Meta.CurrentPage)
		assert.Equal(t, 2, page.Meta.LastPage)
		assert.Nil(t, page.Meta.NextPage)
	})

	t.Run("UnknownEnumValuesMatchNothing", func(t *testing.T) {
		for _, query := range []string{"area=maritime", "status=closed", "area=labor&status=closed"} {
			rec := api.request(t, http.MethodGet, "/api/folders?"+query, nil)
			require.Equal(t, http.StatusOK, rec.Code, query)

			page := decode[services.PaginatedFolders](t, rec)
			assert.Empty(t, page.Data, query)
			assert.Zero(t, page.Meta.Total, query)
		}
	})

	t.Run("HugePageIsEmpty", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, "/api/folders?page=1152921504606846977&limit=16", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		page := decode[services.PaginatedFolders](t, rec)
		assert.Empty(t, page.Data)
		assert.Equal(t, int64(2), page.Meta.Total)
	})

	t.Run("InvalidFilters", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, "/api/folders?client_id=abc&date_from=15/10/2026", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		body := decode[map[string]interface{}](t, rec)
		fields := body["errors"].(map[string]interface{})
		assert.Contains(t, fields, "client_id")
		assert.Contains(t, fields, "date_from")
		assert.NotContains(t, fields, "status")
	})
}

func TestGetFoldersConsultationHandler(t *testing.T) {
	api := newTestAPI(t, models.RoleStaff)
	client := createTestClient(t, api.db, "Acme")
	for i := 0; i < services.ConsultationLimit+5; i++ {
		createTestFolder(t, api.db, client.ID, nil)
	}

	rec := api.request(t, http.MethodGet, "/api/folders/consultation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Folder](t, rec), services.ConsultationLimit)
}

func TestGetFolderStatsHandler(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	client := createTestClient(t, api.db, "Acme")
	createTestFolder(t, api.db, client.ID, nil)
	createTestFolder(t, api.db, client.ID, func(f *models.Folder) { f.Status = models.FolderStatusCompleted })

	rec := api.request(t, http.MethodGet, "/api/folders/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[services.FolderStats](t, rec)
	assert.Equal(t, int64(2), stats.TotalFolders)
	assert.Equal(t, int64(1), stats.CompletedFolders)
	assert.Len(t, stats.MonthlyEvolution, services.StatsHistoryMonths)
}

func TestFolderLifecycleHandlers(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	client := createTestClient(t, api.db, "Joao Pereira")

	rec := api.request(t, http.MethodPost, "/api/folders", map[string]interface{}{
		"title":                 "Wrongful dismissal",
		"area":                  models.AreaLabor,
		"client_id":             client.ID,
		"responsible_lawyer_id": api.user.ID,
		"case_value":            15000.5,
		"description":           `<p>Claim</p><script>alert(1)</script>`,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[models.Folder](t, rec)
	assert.Equal(t, fmt.Sprintf("PROC-%d-00001", time.Now().Year()), created.Code)
	assert.Equal(t, models.FolderStatusPending, created.Status)
	assert.NotContains(t, created.Description, "<script>")
	path := "/api/folders/" + created.ID

	t.Run("Get", func(t *testing.T) {
		rec := api.request(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[models.Folder](t, rec)
		require.NotNil(t, got.ResponsibleLawyer)
		assert.Equal(t, api.user.FullName, got.ResponsibleLawyer.FullName)
	})

	t.Run("Update", func(t *testing.T) {
		rec := api.request(t, http.MethodPut, path, map[string]interface{}{
			"status": models.FolderStatusActive,
			"fees":   1200,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		updated := decode[models.Folder](t, rec)
		assert.Equal(t, models.FolderStatusActive, updated.Status)
		assert.Equal(t, 1200.0, updated.Fees)
		assert.Equal(t, "Wrongful dismissal", updated.Title)
	})

	t.Run("UpdateRejectsBadValues", func(t *testing.T) {
		rec := api.request(t, http.MethodPut, path, map[string]interface{}{
			"title": "",
			"area":  "astrology",
			"fees":  -1,
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := decode[map[string]interface{}](t, rec)["errors"].(map[string]interface{})
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "area")
		assert.Contains(t, fields, "fees")
	})

	t.Run("ToggleFavoriteTwice", func(t *testing.T) {
		first := decode[models.Folder](t, api.request(t, http.MethodPatch, path+"/favorite", nil))
		assert.True(t, first.IsFavorite)
		second := decode[models.Folder](t, api.request(t, http.MethodPatch, path+"/favorite", nil))
		assert.False(t, second.IsFavorite)
	})

	t.Run("Movement", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, path+"/movements", map[string]string{"description": "Petition filed"})
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("History", func(t *testing.T) {
		services.WaitForAudits()
		rec := api.request(t, http.MethodGet, path+"/history", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[struct {
			Movements []models.Movement `json:"movements"`
			Audit     []models.AuditLog `json:"audit"`
		}](t, rec)
		require.Len(t, body.Movements, 1)
		assert.Equal(t, "Petition filed", body.Movements[0].Description)
		// create, update, two favorite toggles
		assert.Len(t, body.Audit, 4)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := api.request(t, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, services.FolderDeletedMessage, decode[map[string]string](t, rec)["message"])

		assert.Equal(t, http.StatusNotFound, api.request(t, http.MethodGet, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, api.request(t, http.MethodPatch, path+"/favorite", nil).Code)
		assert.Equal(t, http.StatusNotFound, api.request(t, http.MethodDelete, path, nil).Code)

		var stored models.Folder
		require.NoError(t, api.db.First(&stored, "id = ?", created.ID).Error)
		assert.True(t, stored.IsDeleted)
	})
}

func TestCreateFolderHandlerValidation(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	client := createTestClient(t, api.db, "Acme")

	t.Run("MissingFields", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/folders", map[string]interface{}{})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := decode[map[string]interface{}](t, rec)["errors"].(map[string]interface{})
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "area")
		assert.Contains(t, fields, "client_id")
	})

	t.Run("UnknownClient", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/folders", map[string]interface{}{
			"title":     "Orphan",
			"area":      models.AreaTax,
			"client_id": "6f1c2a52-8d4e-4e8c-9d55-000000000000",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "client does not exist")
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		body := map[string]interface{}{
			"code":      "PROC-CUSTOM-1",
			"title":     "First",
			"area":      models.AreaTax,
			"client_id": client.ID,
		}
		require.Equal(t, http.StatusCreated, api.request(t, http.MethodPost, "/api/folders", body).Code)
		assert.Equal(t, http.StatusConflict, api.request(t, http.MethodPost, "/api/folders", body).Code)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/folders", "not an object")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteFolderHandlerRequiresRole(t *testing.T) {
	api := newTestAPI(t, models.RoleStaff)
	client := createTestClient(t, api.db, "Acme")
	folder := createTestFolder(t, api.db, client.ID, nil)

	rec := api.request(t, http.MethodDelete, "/api/folders/"+folder.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
