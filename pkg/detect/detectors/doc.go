// Package detectors contains the built-in secret detectors.
//
// Import for side effects to populate the registry:
//
//	import _ "github.com/stillwater-labs/secretsift/pkg/detect/detectors"
package detectors
