package detectors

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// verifyJWT checks that the header and payload segments are base64url JSON.
func verifyJWT(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts[:2] {
		data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(part, "="))
		if err != nil {
			return false
		}
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			return false
		}
	}
	return true
}
