package detectors

import (
	"regexp"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

func init() {
	detect.Register(SlackToken)
	detect.Register(StripeKey)
	detect.Register(TwilioKey)
	detect.Register(SendGridKey)
	detect.Register(AzureStorageKey)
	detect.Register(DiscordBotToken)
}

// SlackToken matches Slack bot/user/app tokens and webhook URLs.
var SlackToken = &detect.RegexDetector{
	Name:    "SlackToken",
	Summary: "Slack token or incoming webhook URL",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`xox(?:a|b|p|o|s|r)-(?:\d+-)+[a-zA-Z0-9]+`),
		regexp.MustCompile(`https://hooks\.slack\.com/(?:services|workflows)/[A-Za-z0-9+/]+`),
	},
}

// StripeKey matches live Stripe secret and restricted keys. Publishable
// keys (pk_live_) are intentionally excluded; they are not secrets.
var StripeKey = &detect.RegexDetector{
	Name:    "StripeKey",
	Summary: "Stripe live secret or restricted key",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:sk|rk)_live_[0-9a-zA-Z]{24,99}`),
	},
}

// TwilioKey matches Twilio account SIDs and API keys.
var TwilioKey = &detect.RegexDetector{
	Name:    "TwilioKey",
	Summary: "Twilio account SID or API key",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:AC|SK)[a-z0-9]{32}`),
	},
}

// SendGridKey matches SendGrid API keys.
var SendGridKey = &detect.RegexDetector{
	Name:    "SendGridKey",
	Summary: "SendGrid API key",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`SG\.[A-Za-z0-9_\-]{22}\.[A-Za-z0-9_\-]{43}`),
	},
}

// AzureStorageKey matches Azure storage account keys in connection strings.
var AzureStorageKey = &detect.RegexDetector{
	Name:    "AzureStorageKey",
	Summary: "Azure storage account access key",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`AccountKey=([A-Za-z0-9+/=]{88})`),
	},
}

// DiscordBotToken matches Discord bot tokens.
var DiscordBotToken = &detect.RegexDetector{
	Name:    "DiscordBotToken",
	Summary: "Discord bot token",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`[MNO][a-zA-Z0-9_\-]{23,25}\.[a-zA-Z0-9_\-]{6}\.[a-zA-Z0-9_\-]{27,39}`),
	},
}
