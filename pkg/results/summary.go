package results

// Summary is the per-check view of a report: every source produced by one
// check collapsed into a single entry.
type Summary struct {
	ID      string
	Name    string
	Code    string
	Passed  bool
	Count   int
	Files   []string
	Sources []Source
}

// Enforced reports whether the summarized check declared a bound.
func (s Summary) Enforced() bool {
	if len(s.Sources) == 0 || s.Sources[0].Check == nil {
		return false
	}
	c := s.Sources[0].Check
	return c.Min != nil || c.Max != nil
}

// Summarize collapses each check's sources into one entry, in report order.
// Sources belong to the same check when they are adjacent and share the
// evaluation ordinal, id and name, so distinct checks declaring the same id
// stay separate. Zero-match sources contribute to a summary but not to its
// file list.
func (c *Chasten) Summarize() []Summary {
	type key struct {
		ordinal  int
		id, name string
	}
	var (
		out  []Summary
		last key
	)
	for _, src := range c.Sources {
		if src.Check == nil {
			continue
		}
		k := key{src.Check.Ordinal, src.Check.ID, src.Check.Name}
		if len(out) == 0 || k != last {
			out = append(out, Summary{
				ID:     src.Check.ID,
				Name:   src.Check.Name,
				Code:   src.Check.Code,
				Passed: true,
			})
			last = k
		}
		s := &out[len(out)-1]
		s.Sources = append(s.Sources, src)
		s.Passed = s.Passed && src.Check.Passed
		if n := len(src.Check.Matches); n > 0 {
			s.Count += n
			s.Files = append(s.Files, src.Filename)
		}
	}
	return out
}

// Passed is the AND over every check result in the report.
func (c *Chasten) Passed() bool {
	for _, src := range c.Sources {
		if src.Check != nil && !src.Check.Passed {
			return false
		}
	}
	return true
}
