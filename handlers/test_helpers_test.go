package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"law_folder_app_go/config"
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"law_folder_app_go/services/i18n"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Password123!"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(testDB))
	require.NoError(t, i18n.Load())

	services.Storage = services.NewLocalStorage(t.TempDir())

	// Set global DB
	db.DB = testDB
	t.Cleanup(func() {
		services.WaitForAudits()
		sqlDB.Close()
	})

	return testDB
}

// testAPI drives the registered routes as an authenticated user
type testAPI struct {
	e     *echo.Echo
	db    *gorm.DB
	user  *models.User
	token string
}

func newTestAPI(t *testing.T, role string) *testAPI {
	t.Helper()
	testDB := setupTestDB(t)

	e := echo.New()
	RegisterRoutes(e, &config.Config{Environment: "test", DefaultLocale: "en", LoginRateLimit: 100})

	user, err := services.CreateUser(testDB, "Test "+role, role+"@lexfolders.test", testPassword, role)
	require.NoError(t, err)
	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
	require.NoError(t, err)

	return &testAPI{e: e, db: testDB, user: user, token: session.Token}
}

func (a *testAPI) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if a.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token)
	}
	return a.send(req)
}

func (a *testAPI) send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createTestClient(t *testing.T, testDB *gorm.DB, name string) *models.Client {
	t.Helper()
	client := &models.Client{Name: name, Document: "000.000.000-00"}
	require.NoError(t, testDB.Create(client).Error)
	return client
}

func createTestFolder(t *testing.T, testDB *gorm.DB, clientID string, mutate func(*models.Folder)) *models.Folder {
	t.Helper()
	folder := &models.Folder{
		Code:     "TEST-" + uuid.New().String()[:8],
		Title:    "Test folder",
		Area:     models.AreaCivilLitigation,
		Status:   models.FolderStatusActive,
		ClientID: clientID,
	}
	if mutate != nil {
		mutate(folder)
	}
	require.NoError(t, testDB.Omit("Client", "ResponsibleLawyer").Create(folder).Error)
	return folder
}

func stringToPtr(s string) *string {
	return &s
}
