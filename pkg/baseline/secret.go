package baseline

import (
	"crypto/sha1" //nolint:gosec // fingerprinting, not cryptography
	"encoding/hex"
)

// PotentialSecret is a single finding recorded in a baseline. The raw value
// is never stored; only its hash.
type PotentialSecret struct {
	Type       string `json:"type"`
	Filename   string `json:"filename"`
	SecretHash string `json:"hashed_secret"`
	LineNumber int    `json:"line_number,omitempty"`

	// Audit state. IsSecret is nil until an operator labels the finding.
	IsSecret   *bool `json:"is_secret,omitempty"`
	IsVerified bool  `json:"is_verified,omitempty"`
}

// HashSecret returns the hex fingerprint of a raw secret value.
func HashSecret(raw string) string {
	sum := sha1.Sum([]byte(raw)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// NewPotentialSecret creates a finding from a raw secret value.
func NewPotentialSecret(detectorType, filename, raw string, lineNumber int) *PotentialSecret {
	return &PotentialSecret{
		Type:       detectorType,
		Filename:   filename,
		SecretHash: HashSecret(raw),
		LineNumber: lineNumber,
	}
}

// Equal reports whether two findings refer to the same secret. Line numbers
// are ignored so that a secret keeps its identity when code moves.
func (s *PotentialSecret) Equal(other *PotentialSecret) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Type == other.Type &&
		s.Filename == other.Filename &&
		s.SecretHash == other.SecretHash
}

// Audited reports whether an operator has labeled this finding.
func (s *PotentialSecret) Audited() bool {
	return s.IsSecret != nil
}

// clone returns a copy so collections never alias caller-owned values.
func (s *PotentialSecret) clone() *PotentialSecret {
	c := *s
	if s.IsSecret != nil {
		v := *s.IsSecret
		c.IsSecret = &v
	}
	return &c
}
