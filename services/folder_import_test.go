package services

import (
	"bytes"
	"context"
	"fmt"
	"law_folder_app_go/models"
	"law_folder_app_go/services/i18n"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(importColumns))
	for i, col := range importColumns {
		header[i] = col
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+2), &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportFolders(t *testing.T) {
	require.NoError(t, i18n.Load())
	db := setupTestDB(t)
	existing := createTestClient(t, db, "Existing")
	svc := NewFolderService(db)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	workbook := buildWorkbook(t, [][]interface{}{
		{"111", "Alice", "Labor claim", "Trabalhista", "Ativo", "", "", "1,500.50", ""},
		{"111", "Alice", "Tax appeal", "tax"},
		{"", "Bob", "", "labor"},
		{"", "Bob", "Bad area", "astrology"},
		{existing.Document, "Whoever", "Existing client folder", "Civil litigation", "", "123", "1st Court", "", "200"},
	})

	result, err := svc.ImportFolders(context.Background(), workbook)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalProcessed)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 1, result.ClientsCreated)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Row 4: title is required")
	assert.Contains(t, result.Errors[1], "astrology")

	var folders []models.Folder
	require.NoError(t, db.Order("code").Find(&folders).Error)
	require.Len(t, folders, 3)

	assert.Equal(t, "PROC-2026-00001", folders[0].Code)
	assert.Equal(t, models.AreaLabor, folders[0].Area)
	assert.Equal(t, models.FolderStatusActive, folders[0].Status)
	assert.InDelta(t, 1500.50, folders[0].CaseValue, 0.001)

	assert.Equal(t, "PROC-2026-00002", folders[1].Code)
	assert.Equal(t, models.FolderStatusPending, folders[1].Status)
	assert.Equal(t, folders[0].ClientID, folders[1].ClientID)

	assert.Equal(t, "PROC-2026-00003", folders[2].Code)
	assert.Equal(t, existing.ID, folders[2].ClientID)
	assert.Equal(t, models.AreaCivilLitigation, folders[2].Area)
	assert.Equal(t, "1st Court", folders[2].Court)
	assert.InDelta(t, 200, folders[2].Fees, 0.001)

	var alice models.Client
	require.NoError(t, db.First(&alice, "document = ?", "111").Error)
	assert.Equal(t, "Alice", alice.Name)
}

func TestImportFoldersAllRowsFail(t *testing.T) {
	require.NoError(t, i18n.Load())
	db := setupTestDB(t)
	svc := NewFolderService(db)

	workbook := buildWorkbook(t, [][]interface{}{
		{"222", "Carol", "", "labor"},
		{"222", "Carol", "Bad", "nope"},
	})

	result, err := svc.ImportFolders(context.Background(), workbook)
	require.ErrorIs(t, err, ErrInvalidWorkbook)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Failed)

	var folders, clients int64
	db.Model(&models.Folder{}).Count(&folders)
	db.Model(&models.Client{}).Count(&clients)
	assert.Zero(t, folders)
	assert.Zero(t, clients)
}

func TestImportFoldersRejectsGarbage(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewFolderService(db).ImportFolders(context.Background(), strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}

func TestGenerateImportTemplateRoundTrip(t *testing.T) {
	require.NoError(t, i18n.Load())
	db := setupTestDB(t)
	ctx := i18n.WithLocale(context.Background(), "pt")

	buf, err := GenerateImportTemplate(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pastas"}, f.GetSheetList())
	title, _ := f.GetCellValue("Pastas", "C1")
	assert.Equal(t, "Título*", title)
	f.Close()

	// the example row imports as-is
	result, err := NewFolderService(db).ImportFolders(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	var folder models.Folder
	require.NoError(t, db.First(&folder).Error)
	assert.Equal(t, models.AreaLabor, folder.Area)
	assert.Equal(t, models.FolderStatusActive, folder.Status)
	assert.InDelta(t, 15000, folder.CaseValue, 0.001)
}
