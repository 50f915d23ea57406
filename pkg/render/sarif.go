package render

import (
	"bytes"
	"encoding/json"

	"github.com/dkoosis/chasten/pkg/results"
	"github.com/dkoosis/chasten/pkg/sarif"
)

// SARIF renders the report as a SARIF 2.1.0 document.
type SARIF struct{}

// NewSARIF creates a SARIF renderer.
func NewSARIF() *SARIF {
	return &SARIF{}
}

// Render formats the report as indented SARIF JSON.
func (s *SARIF) Render(report *results.Chasten) string {
	var buf bytes.Buffer
	if _, err := sarif.NewBuilderFromReport(report).WriteTo(&buf); err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return buf.String()
}
