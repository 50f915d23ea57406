package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkoosis/chasten/pkg/results"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS main (
	_link INTEGER PRIMARY KEY,
	configuration_chastenversion TEXT,
	configuration_projectname TEXT NOT NULL,
	configuration_configdirectory TEXT,
	configuration_searchpath TEXT,
	configuration_debuglevel TEXT,
	configuration_debugdestination TEXT,
	configuration_datetime TEXT,
	configuration_datetimeuuid TEXT,
	configuration_checkinclude TEXT,
	configuration_checkexclude TEXT
);
CREATE TABLE IF NOT EXISTS sources (
	_link INTEGER PRIMARY KEY,
	_link_main INTEGER NOT NULL REFERENCES main(_link),
	filename TEXT,
	filelines TEXT,
	check_id TEXT,
	check_name TEXT,
	check_description TEXT,
	check_code TEXT,
	check_pattern TEXT,
	check_min INTEGER,
	check_max INTEGER,
	check_passed INTEGER
);
CREATE TABLE IF NOT EXISTS sources_check_matches (
	_link INTEGER PRIMARY KEY,
	_link_sources INTEGER NOT NULL REFERENCES sources(_link),
	lineno INTEGER,
	coloffset INTEGER,
	linematch TEXT
);`

// WriteSQLite appends reports to the database at path, creating the file
// and its tables if needed. All reports are written in one transaction.
func WriteSQLite(path string, reports ...*results.Chasten) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, r := range reports {
		if err := insertReport(tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertReport(tx *sql.Tx, r *results.Chasten) error {
	cfg := r.Configuration
	include, err := jsonText(cfg.CheckInclude)
	if err != nil {
		return err
	}
	exclude, err := jsonText(cfg.CheckExclude)
	if err != nil {
		return err
	}
	res, err := tx.Exec(`INSERT INTO main (
		configuration_chastenversion, configuration_projectname, configuration_configdirectory,
		configuration_searchpath, configuration_debuglevel, configuration_debugdestination,
		configuration_datetime, configuration_datetimeuuid,
		configuration_checkinclude, configuration_checkexclude
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.ChastenVersion, cfg.ProjectName, cfg.ConfigDirectory,
		cfg.SearchPath, cfg.DebugLevel, cfg.DebugDestination,
		cfg.CreationDatetime, cfg.DatetimeUUID, include, exclude)
	if err != nil {
		return fmt.Errorf("insert main: %w", err)
	}
	mainID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("main id: %w", err)
	}

	for _, src := range r.Sources {
		if src.Check == nil {
			continue
		}
		c := src.Check
		lines, err := json.Marshal(src.Filelines)
		if err != nil {
			return fmt.Errorf("encode filelines: %w", err)
		}
		res, err := tx.Exec(`INSERT INTO sources (
			_link_main, filename, filelines, check_id, check_name, check_description,
			check_code, check_pattern, check_min, check_max, check_passed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			mainID, src.Filename, string(lines), c.ID, c.Name, c.Description,
			c.Code, c.Pattern, nullInt(c.Min), nullInt(c.Max), c.Passed)
		if err != nil {
			return fmt.Errorf("insert source %s: %w", src.Filename, err)
		}
		sourceID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("source id: %w", err)
		}
		for _, m := range c.Matches {
			if _, err := tx.Exec(`INSERT INTO sources_check_matches (
				_link_sources, lineno, coloffset, linematch
			) VALUES (?, ?, ?, ?)`, sourceID, m.Lineno, m.Coloffset, m.Linematch); err != nil {
				return fmt.Errorf("insert match: %w", err)
			}
		}
	}
	return nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func jsonText(v any) (sql.NullString, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode criterion: %w", err)
	}
	if string(data) == "null" {
		return sql.NullString{}, nil
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
