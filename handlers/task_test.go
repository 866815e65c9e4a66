package handlers

import (
	"law_folder_app_go/models"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderTaskHandlers(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	client := createTestClient(t, api.db, "Acme")
	folder := createTestFolder(t, api.db, client.ID, nil)
	base := "/api/folders/" + folder.ID + "/tasks"

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	rec := api.request(t, http.MethodPost, base, map[string]interface{}{
		"title":          "Draft appeal",
		"assigned_to_id": api.user.ID,
		"due_date":       due,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	task := decode[models.Task](t, rec)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	require.NotNil(t, task.FolderID)
	assert.Equal(t, folder.ID, *task.FolderID)

	rec = api.request(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Task](t, rec), 1)

	t.Run("Complete", func(t *testing.T) {
		rec := api.request(t, http.MethodPatch, "/api/tasks/"+task.ID+"/status", map[string]string{"status": models.TaskStatusCompleted})
		require.Equal(t, http.StatusOK, rec.Code)

		updated := decode[models.Task](t, rec)
		assert.Equal(t, models.TaskStatusCompleted, updated.Status)
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		rec := api.request(t, http.MethodPatch, "/api/tasks/"+task.ID+"/status", map[string]string{"status": "done-ish"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("UnknownTask", func(t *testing.T) {
		rec := api.request(t, http.MethodPatch, "/api/tasks/00000000-0000-0000-0000-000000000000/status", map[string]string{"status": models.TaskStatusCompleted})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, base, map[string]interface{}{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestClientHandlers(t *testing.T) {
	api := newTestAPI(t, models.RoleStaff)

	rec := api.request(t, http.MethodPost, "/api/clients", map[string]string{
		"name":       "Ana Costa",
		"email":      "Ana@Example.com",
		"birth_date": "1991-02-27",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	client := decode[models.Client](t, rec)
	assert.Equal(t, "ana@example.com", client.Email)
	assert.Equal(t, models.ClientTypeIndividual, client.Type)
	require.NotNil(t, client.BirthDate)

	rec = api.request(t, http.MethodGet, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.request(t, http.MethodPost, "/api/clients", map[string]string{"name": "X", "email": "nope", "birth_date": "27/02/1991"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode[map[string]interface{}](t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "birth_date")
}
