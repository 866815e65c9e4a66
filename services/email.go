package services

import (
	"bytes"
	"fmt"
	"html/template"
	"law_folder_app_go/config"
	"law_folder_app_go/services/i18n"
	"log"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API, or logs it in test mode
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("Email logged successfully (test mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Test Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

var hearingReminderTmpl = template.Must(template.New("hearing_reminder").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <p>{{.Greeting}}</p>
  <p>{{.Body}}</p>
  <p><a href="{{.FolderURL}}">{{.Code}}</a></p>
</body>
</html>`))

// HearingReminderData contains data for the hearing reminder email
type HearingReminderData struct {
	LawyerName  string
	FolderID    string
	FolderCode  string
	FolderTitle string
	HearingType string
	ScheduledAt time.Time
	Location    string
	AppURL      string
}

// BuildHearingReminderEmail creates the reminder sent to the responsible lawyer
func BuildHearingReminderEmail(lawyerEmail string, data HearingReminderData, lang string) (*Email, error) {
	args := map[string]interface{}{
		"name":     data.LawyerName,
		"code":     data.FolderCode,
		"title":    data.FolderTitle,
		"type":     i18n.Translate(lang, "hearing_type."+data.HearingType),
		"date":     data.ScheduledAt.Format("2006-01-02 15:04"),
		"location": data.Location,
	}

	greeting := i18n.Translate(lang, "email.hearing_reminder.greeting", args)
	body := i18n.Translate(lang, "email.hearing_reminder.body", args)

	var buf bytes.Buffer
	err := hearingReminderTmpl.Execute(&buf, map[string]string{
		"Lang":      lang,
		"Greeting":  greeting,
		"Body":      body,
		"Code":      data.FolderCode,
		"FolderURL": strings.TrimSuffix(data.AppURL, "/") + "/folders/" + data.FolderID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render hearing reminder: %w", err)
	}

	return &Email{
		To:       []string{lawyerEmail},
		Subject:  i18n.Translate(lang, "email.hearing_reminder.subject", args),
		HTMLBody: buf.String(),
		TextBody: greeting + "\n\n" + body,
	}, nil
}
