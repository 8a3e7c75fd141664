package audit

import (
	"github.com/stillwater-labs/secretsift/pkg/baseline"
)

// SecretClass partitions audited findings for reporting.
type SecretClass string

// Report classes.
const (
	ClassAll       SecretClass = "all"
	ClassReal      SecretClass = "real"
	ClassFalse     SecretClass = "false"
	ClassUnaudited SecretClass = "unaudited"
)

// ReportSecret is one entry in a report. Only hashes and locations are
// exposed; raw values never enter a report.
type ReportSecret struct {
	Filename   string `json:"filename"`
	LineNumber int    `json:"line_number"`
	Type       string `json:"type"`
	SecretHash string `json:"hashed_secret"`
	IsSecret   *bool  `json:"is_secret"`
}

// Report summarizes audit state for machine consumption.
type Report struct {
	GeneratedFrom string         `json:"baseline"`
	Stats         ReportStats    `json:"stats"`
	Secrets       []ReportSecret `json:"secrets"`
}

// ReportStats counts findings by audit class.
type ReportStats struct {
	Total     int `json:"total"`
	Real      int `json:"real"`
	False     int `json:"false"`
	Unaudited int `json:"unaudited"`
}

// GenerateReport builds a report over the findings in class.
func GenerateReport(path string, b *baseline.Baseline, class SecretClass) Report {
	report := Report{GeneratedFrom: path, Secrets: []ReportSecret{}}

	for _, secret := range b.Collection().All() {
		report.Stats.Total++
		switch {
		case !secret.Audited():
			report.Stats.Unaudited++
		case *secret.IsSecret:
			report.Stats.Real++
		default:
			report.Stats.False++
		}
		if !inClass(secret, class) {
			continue
		}
		report.Secrets = append(report.Secrets, ReportSecret{
			Filename:   secret.Filename,
			LineNumber: secret.LineNumber,
			Type:       secret.Type,
			SecretHash: secret.SecretHash,
			IsSecret:   secret.IsSecret,
		})
	}
	return report
}

func inClass(secret *baseline.PotentialSecret, class SecretClass) bool {
	switch class {
	case ClassReal:
		return secret.Audited() && *secret.IsSecret
	case ClassFalse:
		return secret.Audited() && !*secret.IsSecret
	case ClassUnaudited:
		return !secret.Audited()
	default:
		return true
	}
}
