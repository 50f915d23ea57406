package render

import (
	"encoding/json"

	"github.com/dkoosis/chasten/pkg/results"
)

// JSON renders the report in its persisted JSON form.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// Render formats the report as indented JSON.
func (j *JSON) Render(report *results.Chasten) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
