package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/mubendiran/cloudinsight/internal/alert"
)

// maxSlackAlerts caps how many alerts appear in the Slack message.
const maxSlackAlerts = 5

// SlackNotifier posts run summaries to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	post       func(ctx context.Context, url string, msg *slack.WebhookMessage) error
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		post:       slack.PostWebhookContext,
	}
}

// Send posts the alert summary. The full report is not attached; Slack gets
// the headline and the top alerts only.
func (n *SlackNotifier) Send(ctx context.Context, alerts []alert.Alert, now time.Time) error {
	if n.webhookURL == "" {
		slog.Warn("Slack webhook URL not configured, skipping Slack notification")
		return nil
	}

	status := "*All Clear*"
	if len(alerts) > 0 {
		status = fmt.Sprintf("*%d ALERT(S)*", len(alerts))
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType,
			fmt.Sprintf("Cloud Insight Report - %s", now.UTC().Format(time.DateOnly)),
			false, false,
		)),
		slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType,
			fmt.Sprintf("%s\n\nGenerated: %s", status, now.UTC().Format("2006-01-02 15:04:05 UTC")),
			false, false,
		), nil, nil),
	}

	if len(alerts) > 0 {
		var lines []string
		for i, a := range alerts {
			if i == maxSlackAlerts {
				break
			}
			lines = append(lines, fmt.Sprintf("- *%s*: %s", strings.ToUpper(string(a.Severity)), a.Message))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType,
			"*Top Alerts:*\n"+strings.Join(lines, "\n"),
			false, false,
		), nil, nil))
	}

	msg := &slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
	if err := n.post(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("post Slack webhook: %w", err)
	}

	slog.Info("Slack notification sent", "alerts", len(alerts))
	return nil
}
