package detectors

import (
	"regexp"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

func init() {
	detect.Register(GitHubToken)
	detect.Register(GitLabToken)
}

// GitHubToken matches fine-grained and classic GitHub tokens.
var GitHubToken = &detect.RegexDetector{
	Name:    "GitHubToken",
	Summary: "GitHub personal access, OAuth, app, or refresh token",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9_]{36,255}`),
		regexp.MustCompile(`github_pat_[A-Za-z0-9_]{82}`),
	},
}

// GitLabToken matches GitLab token families by prefix.
var GitLabToken = &detect.RegexDetector{
	Name:    "GitLabToken",
	Summary: "GitLab personal access, deploy, or runner token",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?:glpat|gldt|glrt|glsoat|glft)-[A-Za-z0-9_\-]{20,50}`),
	},
}
