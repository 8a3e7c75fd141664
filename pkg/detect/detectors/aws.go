package detectors

import (
	"regexp"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

func init() {
	detect.Register(AWSAccessKey)
}

// AWSAccessKey matches AWS access key IDs by their fixed prefixes.
var AWSAccessKey = &detect.RegexDetector{
	Name:    "AWSAccessKey",
	Summary: "AWS access key ID",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA|ASIA)[A-Z0-9]{16}`),
	},
}
