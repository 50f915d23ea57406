package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dkoosis/chasten/pkg/checks"
	"github.com/dkoosis/chasten/pkg/schema"
	"github.com/dkoosis/chasten/pkg/source"
)

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	Origin      source.Origin  // main config document
	Location    string         // config directory or URL, for the report header
	ChecksFiles []string       // references as declared
	Checks      []checks.Check // merged in declaration order
}

// Resolver loads and validates the main config and every checks document it
// references. It is all-or-nothing: any failure discards the work done so far.
type Resolver struct {
	Loader    *source.Loader
	Validator *schema.Validator
	// Discover supplies the directory used when no location is given.
	Discover func() (string, error)
	Logger   *slog.Logger
}

// NewResolver returns a resolver with the default loader, validator and discovery.
func NewResolver(logger *slog.Logger) (*Resolver, error) {
	v, err := schema.Default()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		Loader:    &source.Loader{},
		Validator: v,
		Discover:  DefaultDirectory,
		Logger:    logger,
	}, nil
}

// Origin classifies userLocation:
//  1. an absolute http(s) URL
//  2. an existing directory, holding config.yml
//  3. an existing file
//  4. empty: the directory returned by discover, holding config.yml
//
// Anything else is ErrInvalidLocation.
func Origin(userLocation string, discover func() (string, error)) (source.Origin, error) {
	if source.IsURL(userLocation) {
		return source.Remote(userLocation), nil
	}
	if userLocation == "" {
		if discover == nil {
			discover = DefaultDirectory
		}
		dir, err := discover()
		if err != nil {
			return source.Origin{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		return source.Local(dir, DefaultConfigFile), nil
	}
	info, err := os.Stat(userLocation)
	if err != nil {
		return source.Origin{}, fmt.Errorf("%w: %s", ErrInvalidLocation, userLocation)
	}
	if info.IsDir() {
		return source.Local(userLocation, DefaultConfigFile), nil
	}
	return source.File(userLocation), nil
}

// Resolve determines the configuration origin, loads and validates the main
// config and each referenced checks document, and merges their checks.
func (r *Resolver) Resolve(ctx context.Context, userLocation string) (*Resolution, error) {
	origin, err := Origin(userLocation, r.Discover)
	if err != nil {
		return nil, err
	}
	log := r.logger().With(slog.String("config", origin.String()))
	log.Debug("resolving configuration", slog.String("origin", origin.Kind.String()))

	cfgDoc, err := r.load(ctx, origin, schema.Config)
	if err != nil {
		return nil, err
	}
	refs, err := checksFiles(cfgDoc)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration validated", slog.Int("checks_files", len(refs)))

	var merged []checks.Check
	for _, ref := range refs {
		sub, err := subOrigin(origin, ref)
		if err != nil {
			return nil, err
		}
		doc, err := r.load(ctx, sub, schema.Checks)
		if err != nil {
			return nil, err
		}
		var file checks.File
		if err := doc.Decode(&file); err != nil {
			return nil, err
		}
		log.Debug("checks file validated",
			slog.String("checks_file", sub.String()),
			slog.Int("checks", len(file.Checks)))
		merged = append(merged, file.Checks...)
	}

	return &Resolution{
		Origin:      origin,
		Location:    location(origin),
		ChecksFiles: refs,
		Checks:      merged,
	}, nil
}

func (r *Resolver) load(ctx context.Context, o source.Origin, kind schema.Kind) (*source.Document, error) {
	doc, err := r.Loader.Load(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := r.Validator.Validate(doc.Tree, kind); err != nil {
		return nil, fmt.Errorf("%s: %w", o, err)
	}
	return doc, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// checksFiles extracts chasten.checks-file from a validated config.
func checksFiles(doc *source.Document) ([]string, error) {
	var cfg struct {
		Chasten struct {
			ChecksFile []string `yaml:"checks-file"`
		} `yaml:"chasten"`
	}
	if err := doc.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Chasten.ChecksFile, nil
}

// subOrigin resolves a checks reference against the main config's origin.
// Local references are relative to the config directory; a remote config can
// only reference remote checks and vice versa.
func subOrigin(parent source.Origin, ref string) (source.Origin, error) {
	isURL := source.IsURL(ref)
	switch {
	case isURL && parent.Kind == source.KindURL:
		return source.Remote(ref), nil
	case isURL:
		return source.Origin{}, fmt.Errorf("%w: %s referenced from local %s", ErrMixedOrigin, ref, parent)
	case parent.Kind == source.KindURL:
		return source.Origin{}, fmt.Errorf("%w: local %s referenced from %s", ErrMixedOrigin, ref, parent)
	default:
		return source.Local(parent.Dir, ref), nil
	}
}

func location(o source.Origin) string {
	if o.Kind == source.KindURL {
		return o.URL
	}
	return o.Dir
}

// IsResolutionError reports whether err came from one of the resolution
// failure classes rather than an unexpected I/O problem.
func IsResolutionError(err error) bool {
	return errors.Is(err, source.ErrNotFound) ||
		errors.Is(err, source.ErrRemoteFetch) ||
		errors.Is(err, source.ErrParse) ||
		errors.Is(err, schema.ErrInvalid) ||
		errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrMixedOrigin)
}
