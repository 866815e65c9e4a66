package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"law_folder_app_go/models"
	"law_folder_app_go/services/i18n"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const exportBatchSize = 100

var exportColumns = []string{
	"code", "title", "area", "status", "client", "lawyer",
	"case_number", "court", "case_value", "fees", "next_hearing", "created_at",
}

func exportHeaders(ctx context.Context) []string {
	headers := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		headers[i] = i18n.T(ctx, "export."+col)
	}
	return headers
}

// exportRow flattens a folder into the export columns, labels localised
func exportRow(ctx context.Context, f *models.Folder) []string {
	client, lawyer, nextHearing := "", "", ""
	if f.Client != nil {
		client = f.Client.Name
	}
	if f.ResponsibleLawyer != nil {
		lawyer = f.ResponsibleLawyer.FullName
	}
	if f.NextHearing != nil {
		nextHearing = f.NextHearing.Format("2006-01-02 15:04")
	}
	return []string{
		f.Code,
		f.Title,
		i18n.AreaLabel(ctx, f.Area),
		i18n.StatusLabel(ctx, f.Status),
		client,
		lawyer,
		f.CaseNumber,
		f.Court,
		strconv.FormatFloat(f.CaseValue, 'f', 2, 64),
		strconv.FormatFloat(f.Fees, 'f', 2, 64),
		nextHearing,
		f.CreatedAt.Format("2006-01-02"),
	}
}

// ExportFoldersCSV writes every live folder matching filters as CSV
func ExportFoldersCSV(ctx context.Context, folders *FolderService, filters FolderFilters, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders(ctx)); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}

	count := 0
	err := folders.ForEachFolderBatch(ctx, filters, exportBatchSize, func(batch []models.Folder) error {
		for i := range batch {
			if err := cw.Write(exportRow(ctx, &batch[i])); err != nil {
				return err
			}
			count++
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return count, fmt.Errorf("failed to export folders: %w", err)
	}

	cw.Flush()
	return count, cw.Error()
}

// ExportFoldersXLSX writes every live folder matching filters as a workbook
func ExportFoldersXLSX(ctx context.Context, folders *FolderService, filters FolderFilters, w io.Writer) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to open stream writer: %w", err)
	}
	_ = sw.SetColWidth(1, 1, 18)
	_ = sw.SetColWidth(2, 2, 40)
	_ = sw.SetColWidth(3, len(exportColumns), 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	header := make([]interface{}, len(exportColumns))
	for i, h := range exportHeaders(ctx) {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	err = folders.ForEachFolderBatch(ctx, filters, exportBatchSize, func(batch []models.Folder) error {
		for i := range batch {
			values := exportRow(ctx, &batch[i])
			cells := make([]interface{}, len(values))
			for j, v := range values {
				cells[j] = v
			}
			// numeric columns stay numeric in the workbook
			cells[8] = batch[i].CaseValue
			cells[9] = batch[i].Fees

			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := sw.SetRow(cell, cells); err != nil {
				return err
			}
			row++
		}
		return nil
	})
	if err != nil {
		return row - 2, fmt.Errorf("failed to export folders: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return row - 2, fmt.Errorf("failed to flush workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return row - 2, fmt.Errorf("failed to write workbook: %w", err)
	}
	return row - 2, nil
}
