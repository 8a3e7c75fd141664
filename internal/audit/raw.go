package audit

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/stillwater-labs/secretsift/pkg/baseline"
	"github.com/stillwater-labs/secretsift/pkg/detect"
)

// ErrSecretNotFound means the recorded finding no longer matches the file
// content at its line, usually because the file changed since the scan.
var ErrSecretNotFound = errors.New("secret not found on the specified line")

// resolvePath joins a baseline-relative filename with the directory the
// baseline lives in, so audits work from any working directory. Absolute
// filenames pass through.
func resolvePath(root, name string) string {
	if root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, name)
}

// RawSecretFromFile re-runs the finding's detector against the recorded
// line and returns the live raw value whose hash matches the baseline.
// The finding's filename is resolved against root. The raw value exists in
// memory only for display during an audit.
func RawSecretFromFile(root string, secret *baseline.PotentialSecret) (string, error) {
	if secret.LineNumber == 0 {
		return "", baseline.ErrNoLineNumber
	}
	detector, ok := detect.Get(secret.Type)
	if !ok {
		return "", fmt.Errorf("unknown detector type %q", secret.Type)
	}

	snippet, err := ReadSnippet(resolvePath(root, secret.Filename), secret.LineNumber)
	if err != nil {
		return "", err
	}

	line := detect.Line{
		Filename: secret.Filename,
		Number:   secret.LineNumber,
		Text:     snippet.TargetLine(),
	}
	for _, candidate := range detector.Analyze(line) {
		if baseline.HashSecret(candidate.Raw) == secret.SecretHash {
			return candidate.Raw, nil
		}
	}
	return "", fmt.Errorf("%w: %s:%d", ErrSecretNotFound, secret.Filename, secret.LineNumber)
}
