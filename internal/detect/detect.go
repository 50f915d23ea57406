// Package detect sniffs a file's leading bytes to decide what kind of
// document it holds before integrate tries to decode it.
package detect

import (
	"bytes"
	"encoding/json"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown    Format = iota
	Report            // a single saved analysis report
	Integrated        // a combined report written by integrate
	SARIF             // SARIF 2.1.0, recognized only to give a clearer skip reason
)

func (f Format) String() string {
	switch f {
	case Report:
		return "report"
	case Integrated:
		return "integrated report"
	case SARIF:
		return "SARIF"
	default:
		return "unknown"
	}
}

// Sniff examines data to determine its format.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 || data[0] != '{' {
		return Unknown
	}

	var probe struct {
		Configuration *struct {
			ProjectName string `json:"projectname"`
		} `json:"configuration"`
		Sources []json.RawMessage `json:"sources"`
		Reports []json.RawMessage `json:"reports"`
		Project string            `json:"projectname"`
		Version string            `json:"version"`
		Runs    []json.RawMessage `json:"runs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Unknown
	}

	switch {
	case probe.Configuration != nil && probe.Configuration.ProjectName != "" && probe.Sources != nil:
		return Report
	case probe.Project != "" && probe.Reports != nil:
		return Integrated
	case probe.Version != "" && probe.Runs != nil:
		return SARIF
	default:
		return Unknown
	}
}
