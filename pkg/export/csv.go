package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dkoosis/chasten/pkg/results"
)

// CSVHeader is the column layout of WriteCSV, one row per match.
var CSVHeader = []string{
	"projectname", "chastenversion", "datetime",
	"filename", "check_id", "check_name", "check_description", "check_code",
	"check_pattern", "check_min", "check_max", "check_passed",
	"lineno", "coloffset", "linematch",
}

// WriteCSV flattens reports into one row per match. A source whose check
// found nothing still gets a row, with the match columns left empty.
func WriteCSV(w io.Writer, reports ...*results.Chasten) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range reports {
		cfg := r.Configuration
		for _, src := range r.Sources {
			if src.Check == nil {
				continue
			}
			c := src.Check
			prefix := []string{
				cfg.ProjectName, cfg.ChastenVersion, cfg.CreationDatetime,
				src.Filename, c.ID, c.Name, c.Description, c.Code,
				c.Pattern, optInt(c.Min), optInt(c.Max), strconv.FormatBool(c.Passed),
			}
			if len(c.Matches) == 0 {
				if err := cw.Write(append(prefix, "", "", "")); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
				continue
			}
			for _, m := range c.Matches {
				row := append(append([]string{}, prefix...),
					strconv.Itoa(m.Lineno), strconv.Itoa(m.Coloffset), m.Linematch)
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write csv row: %w", err)
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
