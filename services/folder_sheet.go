package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"law_folder_app_go/models"
	"law_folder_app_go/services/i18n"
	"time"
)

var folderSheetTmpl = template.Must(template.New("folder_sheet").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"date": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("2006-01-02")
	},
}).Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11pt; color: #111827; }
  h1 { font-size: 16pt; margin-bottom: 2px; }
  .code { color: #6b7280; margin-top: 0; }
  table { width: 100%; border-collapse: collapse; margin: 12px 0; }
  th { text-align: left; width: 35%; color: #374151; font-weight: 600; }
  th, td { padding: 4px 6px; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
  h2 { font-size: 12pt; margin-top: 18px; }
  footer { margin-top: 24px; font-size: 9pt; color: #9ca3af; }
</style>
</head>
<body>
  <h1>{{.L.title}}: {{.F.Title}}</h1>
  <p class="code">{{.F.Code}} &middot; {{.Area}} &middot; {{.Status}}</p>
  <table>
    <tr><th>{{.L.client}}</th><td>{{if .F.Client}}{{.F.Client.Name}} ({{.F.Client.Document}}){{else}}-{{end}}</td></tr>
    <tr><th>{{.L.lawyer}}</th><td>{{if .F.ResponsibleLawyer}}{{.F.ResponsibleLawyer.FullName}}{{else}}-{{end}}</td></tr>
    <tr><th>{{.L.opposing_party}}</th><td>{{.F.OpposingParty}}</td></tr>
    <tr><th>{{.L.case_number}}</th><td>{{.F.CaseNumber}}</td></tr>
    <tr><th>{{.L.court}}</th><td>{{.F.Court}}</td></tr>
  </table>
  <h2>{{.L.financial}}</h2>
  <table>
    <tr><th>{{.L.case_value}}</th><td>{{money .F.CaseValue}}</td></tr>
    <tr><th>{{.L.fees}}</th><td>{{money .F.Fees}}</td></tr>
  </table>
  <h2>{{.L.dates}}</h2>
  <table>
    <tr><th>{{.L.next_hearing}}</th><td>{{date .F.NextHearing}}</td></tr>
    <tr><th>{{.L.created_at}}</th><td>{{.F.CreatedAt.Format "2006-01-02"}}</td></tr>
  </table>
  {{if .F.Description}}<h2>{{.L.description}}</h2><div>{{.Description}}</div>{{end}}
  {{if .F.Observation}}<h2>{{.L.observation}}</h2><div>{{.Observation}}</div>{{end}}
  <footer>{{.Generated}}</footer>
</body>
</html>`))

// RenderFolderSheetHTML renders the printable sheet of a folder in the
// language carried by ctx
func RenderFolderSheetHTML(ctx context.Context, folder *models.Folder, now time.Time) (string, error) {
	labels := map[string]string{}
	for _, key := range []string{"title", "client", "lawyer", "opposing_party", "financial", "dates", "description", "observation"} {
		labels[key] = i18n.T(ctx, "sheet."+key)
	}
	for _, key := range []string{"case_number", "court", "case_value", "fees", "next_hearing", "created_at"} {
		labels[key] = i18n.T(ctx, "export."+key)
	}

	var buf bytes.Buffer
	err := folderSheetTmpl.Execute(&buf, map[string]interface{}{
		"Lang":   i18n.GetLocale(ctx),
		"L":      labels,
		"F":      folder,
		"Area":   i18n.AreaLabel(ctx, folder.Area),
		"Status": i18n.StatusLabel(ctx, folder.Status),
		// stored text was sanitised on write
		"Description": template.HTML(folder.Description),
		"Observation": template.HTML(folder.Observation),
		"Generated":   i18n.T(ctx, "sheet.generated_at", map[string]interface{}{"date": now.Format("2006-01-02 15:04")}),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render folder sheet: %w", err)
	}
	return buf.String(), nil
}

// GenerateFolderSheetPDF renders and prints the folder sheet
func GenerateFolderSheetPDF(ctx context.Context, folder *models.Folder) ([]byte, error) {
	html, err := RenderFolderSheetHTML(ctx, folder, time.Now())
	if err != nil {
		return nil, err
	}
	return GeneratePDF(ctx, html, DefaultPDFOptions())
}
