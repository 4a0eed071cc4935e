package commands

import (
	"fmt"
	"strings"
)

// enhanceError wraps an error with context and suggestions for common AWS issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "NoCredentialProviders"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Apply the IAM policy from 'cloudinsight init' to your role/user"
	case strings.Contains(msg, "MessageRejected"):
		hint = "Email rejected. Ensure the sender address is verified in SES"
	case strings.Contains(msg, "NoSuchBucket"):
		hint = "S3 bucket not found. Check storage.s3_bucket in config.yaml or the S3_BUCKET env var"
	case strings.Contains(msg, "Throttling"):
		hint = "AWS API rate limit hit. Retry later or increase the timeout"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}
