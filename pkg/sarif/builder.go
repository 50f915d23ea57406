package sarif

import (
	"encoding/json"
	"io"
)

// Builder accumulates rules and results for a single run.
type Builder struct {
	run   Run
	rules map[string]int
}

// NewBuilder creates a SARIF builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{
		run: Run{
			Tool:    Tool{Driver: Driver{Name: toolName, Version: toolVersion}},
			Results: []Result{},
		},
		rules: make(map[string]int),
	}
}

// AddRule declares a rule. Re-declaring an identical rule is a no-op; a rule
// reusing an id under a different name or description is added alongside and
// later results for that id refer to it.
func (b *Builder) AddRule(id, name, description string) *Builder {
	r := Rule{ID: id, Name: name}
	if name != "" {
		r.ShortDescription = &Message{Text: name}
	}
	if description != "" {
		r.FullDescription = &Message{Text: description}
	}
	if i, ok := b.rules[id]; ok && sameRule(b.run.Tool.Driver.Rules[i], r) {
		return b
	}
	b.rules[id] = len(b.run.Tool.Driver.Rules)
	b.run.Tool.Driver.Rules = append(b.run.Tool.Driver.Rules, r)
	return b
}

func sameRule(a, b Rule) bool {
	text := func(m *Message) string {
		if m == nil {
			return ""
		}
		return m.Text
	}
	return a.ID == b.ID && a.Name == b.Name && text(a.FullDescription) == text(b.FullDescription)
}

// AddResult records a finding. An empty file produces a result with no
// location; line and col are 1-based and omitted when zero.
func (b *Builder) AddResult(ruleID, level, message, file string, line, col int, snippet string) *Builder {
	if _, ok := b.rules[ruleID]; !ok {
		b.AddRule(ruleID, "", "")
	}
	r := Result{
		RuleID:    ruleID,
		RuleIndex: b.rules[ruleID],
		Level:     level,
		Message:   Message{Text: message},
	}
	if file != "" {
		loc := PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: file}}
		if line > 0 {
			loc.Region = &Region{StartLine: line, StartColumn: col}
			if snippet != "" {
				loc.Region.Snippet = &Text{Text: snippet}
			}
		}
		r.Locations = []Location{{PhysicalLocation: loc}}
	}
	b.run.Results = append(b.run.Results, r)
	return b
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return &Document{
		Version: Version,
		Schema:  SchemaURI,
		Runs:    []Run{b.run},
	}
}

// WriteTo writes the SARIF document as indented JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(b.Document(), "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}
