package detectors

import (
	"regexp"

	"github.com/stillwater-labs/secretsift/pkg/detect"
)

func init() {
	detect.Register(PrivateKey)
	detect.Register(BasicAuthURL)
	detect.Register(JWTToken)
}

// PrivateKey matches PEM private key headers. The header alone is enough;
// the key body spans following lines and never needs to be captured.
var PrivateKey = &detect.RegexDetector{
	Name:    "PrivateKey",
	Summary: "PEM-encoded private key",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`BEGIN (?:DSA|EC|OPENSSH|PGP|RSA|SSH|ENCRYPTED)? ?PRIVATE KEY`),
	},
}

// BasicAuthURL captures the password component of user:password@host URLs.
// Template placeholders ({} braces) are excluded up front; the templated
// filter handles the remaining ${VAR} forms.
var BasicAuthURL = &detect.RegexDetector{
	Name:    "BasicAuthURL",
	Summary: "password embedded in a basic-auth URL",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`://[^{}\s:@/?#\[\]]+:([^{}\s@/?#\[\]]+)@`),
	},
}

// JWTToken matches JSON Web Tokens and verifies that the first two segments
// decode to base64url JSON objects, rejecting look-alike strings.
var JWTToken = &detect.RegexDetector{
	Name:    "JWTToken",
	Summary: "JSON Web Token",
	Patterns: []*regexp.Regexp{
		regexp.MustCompile(`eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-.+/=]*`),
	},
	Verify: verifyJWT,
}
