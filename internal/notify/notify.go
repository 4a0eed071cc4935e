package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/mubendiran/cloudinsight/internal/alert"
	"github.com/mubendiran/cloudinsight/internal/config"
)

// Notifier fans the report out to every enabled channel.
type Notifier struct {
	cfg   config.Notifications
	email *EmailSender
	slack *SlackNotifier
}

// NewNotifier builds a notifier for the enabled channels.
func NewNotifier(awsCfg awssdk.Config, cfg config.Notifications) *Notifier {
	n := &Notifier{cfg: cfg}
	if cfg.Email.Enabled {
		n.email = NewEmailSender(awsCfg, cfg.Email)
	}
	if cfg.Slack.Enabled {
		n.slack = NewSlackNotifier(cfg.Slack.WebhookURL)
	}
	return n
}

// Send delivers the report over all enabled channels. Channel failures are
// collected so one broken channel does not silence the other; any failure
// is reported so the run exits non-zero.
func (n *Notifier) Send(ctx context.Context, reportText string, alerts []alert.Alert, now time.Time) error {
	if !n.cfg.Enabled {
		slog.Info("Notifications disabled, skipping")
		return nil
	}
	if n.cfg.NotifyOnlyOnAlerts && len(alerts) == 0 {
		slog.Info("No alerts detected, skipping notification")
		return nil
	}

	var errs []error
	if n.email != nil {
		if err := n.email.Send(ctx, reportText, alerts, now); err != nil {
			slog.Error("Email notification failed", "error", err)
			errs = append(errs, err)
		}
	}
	if n.slack != nil {
		if err := n.slack.Send(ctx, alerts, now); err != nil {
			slog.Error("Slack notification failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
