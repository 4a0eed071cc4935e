package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/mubendiran/cloudinsight/internal/alert"
	"github.com/mubendiran/cloudinsight/internal/config"
)

// SESAPI is the minimal interface for sending email.
type SESAPI interface {
	SendEmail(ctx context.Context, input *sesv2.SendEmailInput, opts ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailSender delivers report email via SES.
type EmailSender struct {
	api SESAPI
	cfg config.Email
}

// NewEmailSender creates a sender from an AWS config.
func NewEmailSender(awsCfg awssdk.Config, cfg config.Email) *EmailSender {
	return &EmailSender{api: sesv2.NewFromConfig(awsCfg), cfg: cfg}
}

// NewEmailSenderFromAPI creates a sender with an injected API, for tests.
func NewEmailSenderFromAPI(api SESAPI, cfg config.Email) *EmailSender {
	return &EmailSender{api: api, cfg: cfg}
}

// Send delivers the report to all configured recipients.
func (s *EmailSender) Send(ctx context.Context, reportText string, alerts []alert.Alert, now time.Time) error {
	if s.cfg.Sender == "" || len(s.cfg.Recipients) == 0 {
		slog.Warn("Email sender or recipients not configured, skipping email")
		return nil
	}

	subject := s.subject(alerts, now)
	bodyText := s.textBody(reportText, alerts, now)
	bodyHTML := s.htmlBody(reportText, alerts, now)

	out, err := s.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: awssdk.String(s.cfg.Sender),
		Destination: &sestypes.Destination{
			ToAddresses: s.cfg.Recipients,
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{
					Data:    awssdk.String(subject),
					Charset: awssdk.String("UTF-8"),
				},
				Body: &sestypes.Body{
					Text: &sestypes.Content{
						Data:    awssdk.String(bodyText),
						Charset: awssdk.String("UTF-8"),
					},
					Html: &sestypes.Content{
						Data:    awssdk.String(bodyHTML),
						Charset: awssdk.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	slog.Info("Email sent", "recipients", len(s.cfg.Recipients), "message_id", awssdk.ToString(out.MessageId))
	return nil
}

func (s *EmailSender) subject(alerts []alert.Alert, now time.Time) string {
	suffix := " - All Clear"
	if len(alerts) > 0 {
		suffix = fmt.Sprintf(" - %d ALERTS", len(alerts))
	}
	return fmt.Sprintf("%s Daily Report %s%s", s.cfg.SubjectPrefix, now.UTC().Format(time.DateOnly), suffix)
}

func (s *EmailSender) textBody(reportText string, alerts []alert.Alert, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily Report\nGenerated: %s\n\nALERT SUMMARY\n\n", now.UTC().Format("2006-01-02 15:04:05 UTC"))

	if len(alerts) > 0 {
		fmt.Fprintf(&b, "%d alert(s) detected\n\n", len(alerts))
		for _, a := range alerts {
			fmt.Fprintf(&b, "- %s: %s\n", strings.ToUpper(string(a.Severity)), a.Message)
		}
	} else {
		b.WriteString("No alerts detected - all systems operating normally\n")
	}

	if s.cfg.IncludeFullReport {
		fmt.Fprintf(&b, "\nFULL REPORT\n\n%s\n", reportText)
	} else {
		b.WriteString("\nFull report available in the S3 bucket.\n")
	}
	return b.String()
}

func (s *EmailSender) htmlBody(reportText string, alerts []alert.Alert, now time.Time) string {
	var rows strings.Builder
	if len(alerts) > 0 {
		for _, a := range alerts {
			fmt.Fprintf(&rows, "<tr><td style=\"color:%s;font-weight:bold\">%s</td><td>%s</td></tr>\n",
				severityColor(a.Severity), strings.ToUpper(string(a.Severity)), a.Message)
		}
	}

	alertSection := "<h2>All Clear</h2><p>No alerts detected - all systems operating normally.</p>"
	if len(alerts) > 0 {
		alertSection = fmt.Sprintf("<h2>%d Alert(s) Detected</h2><table border=\"1\" cellpadding=\"6\">%s</table>", len(alerts), rows.String())
	}

	reportSection := ""
	if s.cfg.IncludeFullReport {
		reportSection = fmt.Sprintf("<h2>Full Report</h2><pre>%s</pre>", reportText)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,sans-serif;max-width:800px;margin:0 auto">
<h1>Daily Cloud Health Report</h1>
<p>Generated: %s</p>
%s
%s
</body>
</html>`, now.UTC().Format("2006-01-02 15:04:05 UTC"), alertSection, reportSection)
}

func severityColor(s alert.Severity) string {
	switch s {
	case alert.SeverityCritical:
		return "#dc2626"
	case alert.SeverityHigh:
		return "#ea580c"
	case alert.SeverityMedium:
		return "#ca8a04"
	case alert.SeverityLow:
		return "#65a30d"
	default:
		return "#6b7280"
	}
}
