package filter

import "regexp"

func init() {
	Register(AllowlistComment{})
}

// Comment syntaxes in which an allowlist pragma is recognized.
var allowlistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[#]\s*pragma:\s*allowlist[\s-]secret`),
	regexp.MustCompile(`//\s*pragma:\s*allowlist[\s-]secret`),
	regexp.MustCompile(`/\*\s*pragma:\s*allowlist[\s-]secret\s*\*/`),
	regexp.MustCompile(`<!--\s*pragma:\s*allowlist[\s-]secret\s*-->`),
	regexp.MustCompile(`;\s*pragma:\s*allowlist[\s-]secret`),
	regexp.MustCompile(`--\s*pragma:\s*allowlist[\s-]secret`),
}

var allowlistNextlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[#]\s*pragma:\s*allowlist[\s-]nextline[\s-]secret`),
	regexp.MustCompile(`//\s*pragma:\s*allowlist[\s-]nextline[\s-]secret`),
	regexp.MustCompile(`/\*\s*pragma:\s*allowlist[\s-]nextline[\s-]secret\s*\*/`),
	regexp.MustCompile(`<!--\s*pragma:\s*allowlist[\s-]nextline[\s-]secret\s*-->`),
	regexp.MustCompile(`;\s*pragma:\s*allowlist[\s-]nextline[\s-]secret`),
	regexp.MustCompile(`--\s*pragma:\s*allowlist[\s-]nextline[\s-]secret`),
}

// AllowlistComment suppresses findings on lines carrying an allowlist
// pragma, or lines immediately following a nextline pragma.
type AllowlistComment struct{}

// Name implements Filter.
func (AllowlistComment) Name() string { return "allowlist.comment" }

// Description implements Filter.
func (AllowlistComment) Description() string {
	return "line is annotated with a 'pragma: allowlist secret' comment"
}

// ShouldExclude implements Filter.
func (AllowlistComment) ShouldExclude(ctx Context) bool {
	for _, p := range allowlistPatterns {
		if p.MatchString(ctx.Line) {
			return true
		}
	}
	for _, p := range allowlistNextlinePatterns {
		if p.MatchString(ctx.PrevLine) {
			return true
		}
	}
	return false
}
