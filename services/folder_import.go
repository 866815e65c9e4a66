package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"law_folder_app_go/models"
	"law_folder_app_go/services/i18n"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportMaxRows caps the folders created by one workbook
const ImportMaxRows = 1000

var ErrInvalidWorkbook = errors.New("invalid workbook")

// import columns, in sheet order
var importColumns = []string{
	"client_document", "client", "title", "area", "status",
	"case_number", "court", "case_value", "fees",
}

// FolderImportResult summarises a bulk import
type FolderImportResult struct {
	TotalProcessed   int      `json:"total_processed"`
	Created          int      `json:"created"`
	Failed           int      `json:"failed"`
	SkippedOverLimit int      `json:"skipped_over_limit"`
	ClientsCreated   int      `json:"clients_created"`
	Errors           []string `json:"errors"`
}

// GenerateImportTemplate builds the workbook users fill in for ImportFolders
func GenerateImportTemplate(ctx context.Context) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		header := i18n.T(ctx, "export."+col)
		if col == "client" || col == "title" || col == "area" {
			header += "*"
		}
		f.SetCellValue(sheet, cell, header)
	}
	f.SetColWidth(sheet, "A", "I", 20)
	f.SetColWidth(sheet, "C", "C", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", headerStyle)

	// example row
	f.SetSheetRow(sheet, "A2", &[]interface{}{
		"123.456.789-00",
		"John Doe",
		"Overtime claim",
		i18n.AreaLabel(ctx, models.AreaLabor),
		i18n.StatusLabel(ctx, models.FolderStatusActive),
		"0001234-56.2026.5.02.0001",
		"2nd Labor Court",
		15000,
		3000,
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// enumLookup maps codes and their labels in every language back to codes
func enumLookup(prefix string, codes []string) map[string]string {
	lookup := make(map[string]string)
	for _, code := range codes {
		lookup[code] = code
		for _, lang := range i18n.Languages() {
			lookup[strings.ToLower(i18n.Translate(lang, prefix+"."+code))] = code
		}
	}
	return lookup
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseAmount(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

// ImportFolders creates folders from the first sheet of an xlsx workbook.
// Clients are matched by document, then by name, and created when missing.
// Labels are accepted in any supported language. Row failures are
// reported and skipped; the import is rolled back only when every row fails.
func (s *FolderService) ImportFolders(ctx context.Context, file io.Reader) (*FolderImportResult, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInvalidWorkbook)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	areas := enumLookup("area", models.FolderAreas)
	statuses := enumLookup("status", models.FolderStatuses)
	result := &FolderImportResult{Errors: []string{}}
	var codes []string

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txFolders := &FolderService{db: tx, now: s.now}
		clients := make(map[string]string)

		for i, row := range rows {
			if i == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
				continue
			}
			if result.Created >= ImportMaxRows {
				result.SkippedOverLimit++
				continue
			}
			result.TotalProcessed++
			line := i + 1

			fail := func(format string, args ...interface{}) {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: ", line)+fmt.Sprintf(format, args...))
			}

			document, clientName, title := cellAt(row, 0), cellAt(row, 1), cellAt(row, 2)
			if clientName == "" && document == "" {
				fail("client is required")
				continue
			}
			if title == "" {
				fail("title is required")
				continue
			}
			area, ok := areas[strings.ToLower(cellAt(row, 3))]
			if !ok {
				fail("unknown practice area %q", cellAt(row, 3))
				continue
			}
			status := models.FolderStatusPending
			if raw := cellAt(row, 4); raw != "" {
				if status, ok = statuses[strings.ToLower(raw)]; !ok {
					fail("unknown folder status %q", raw)
					continue
				}
			}
			caseValue, err := parseAmount(cellAt(row, 7))
			if err != nil {
				fail("%v", err)
				continue
			}
			fees, err := parseAmount(cellAt(row, 8))
			if err != nil {
				fail("%v", err)
				continue
			}

			clientID, created, err := resolveImportClient(tx, clients, document, clientName)
			if err != nil {
				return err
			}
			if created {
				result.ClientsCreated++
			}

			code, err := txFolders.nextFolderCode(ctx)
			if err != nil {
				return err
			}
			folder := models.Folder{
				Code:       code,
				Area:       area,
				Status:     status,
				Title:      title,
				CaseNumber: cellAt(row, 5),
				Court:      cellAt(row, 6),
				CaseValue:  caseValue,
				Fees:       fees,
				ClientID:   clientID,
				Metadata:   datatypes.JSONMap{"source": "import"},
			}
			if err := tx.Omit("Client", "ResponsibleLawyer").Create(&folder).Error; err != nil {
				fail("failed to save folder: %v", err)
				continue
			}
			codes = append(codes, folder.Code)
			result.Created++
		}

		if result.Created == 0 && result.Failed > 0 {
			return errAllRowsFailed
		}
		return nil
	})
	if errors.Is(err, errAllRowsFailed) {
		return result, fmt.Errorf("%w: all rows failed", ErrInvalidWorkbook)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import folders: %w", err)
	}

	if result.Created > 0 {
		auditFromContext(ctx, s.db, models.AuditActionImport, models.AuditResourceFolder,
			"", "", fmt.Sprintf("Imported %d folders", result.Created), nil,
			map[string]interface{}{"codes": codes, "clients_created": result.ClientsCreated})
	}
	return result, nil
}

var errAllRowsFailed = errors.New("all rows failed")

// resolveImportClient finds or creates the client of an imported row
func resolveImportClient(tx *gorm.DB, seen map[string]string, document, name string) (string, bool, error) {
	key := "doc:" + document
	if document == "" {
		key = "name:" + strings.ToLower(name)
	}
	if id, ok := seen[key]; ok {
		return id, false, nil
	}

	var client models.Client
	query := tx.Model(&models.Client{})
	if document != "" {
		query = query.Where("document = ?", document)
	} else {
		query = query.Where("LOWER(name) = ?", strings.ToLower(name))
	}
	err := query.First(&client).Error
	switch {
	case err == nil:
		seen[key] = client.ID
		return client.ID, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, fmt.Errorf("failed to look up client: %w", err)
	}

	if name == "" {
		name = document
	}
	client = models.Client{Name: name, Document: document, Type: models.ClientTypeIndividual}
	if err := tx.Create(&client).Error; err != nil {
		return "", false, fmt.Errorf("failed to create client: %w", err)
	}
	seen[key] = client.ID
	return client.ID, true, nil
}
