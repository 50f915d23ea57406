// Package source loads configuration documents from a local directory, a
// single file, or a URL and parses them into generic trees.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound reports a local document that does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrRemoteFetch reports a URL that answered with a non-success status.
	ErrRemoteFetch = errors.New("remote fetch failed")
	// ErrParse reports text that is not a structured document.
	ErrParse = errors.New("document could not be parsed")
)

// Kind classifies where a document comes from.
type Kind int

const (
	KindLocal Kind = iota // directory plus file name
	KindURL
)

func (k Kind) String() string {
	if k == KindURL {
		return "url"
	}
	return "local"
}

// Origin identifies one document.
type Origin struct {
	Kind Kind
	Dir  string // KindLocal only
	Name string // KindLocal only
	URL  string // KindURL only
}

// Local names the file name inside dir.
func Local(dir, name string) Origin {
	return Origin{Kind: KindLocal, Dir: dir, Name: name}
}

// File splits an explicit file path into its directory and name.
func File(path string) Origin {
	return Local(filepath.Dir(path), filepath.Base(path))
}

// Remote names a document served at rawURL.
func Remote(rawURL string) Origin {
	return Origin{Kind: KindURL, URL: rawURL}
}

// Path returns the local path of the document, or "" for URL origins.
func (o Origin) Path() string {
	if o.Kind == KindURL {
		return ""
	}
	return filepath.Join(o.Dir, o.Name)
}

func (o Origin) String() string {
	if o.Kind == KindURL {
		return o.URL
	}
	return o.Path()
}

// Document is the raw text of a loaded document and its parsed tree.
type Document struct {
	Origin Origin
	Raw    string
	Tree   any // maps keyed by string, slices, scalars; nil for an empty document
}

// Decode unmarshals the raw text into v.
func (d *Document) Decode(v any) error {
	if err := yaml.Unmarshal([]byte(d.Raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, d.Origin, err)
	}
	return nil
}

// Loader reads documents. The zero value uses http.DefaultClient.
type Loader struct {
	Client *http.Client
}

// Load reads and parses the document at o. On error no document is returned.
func (l *Loader) Load(ctx context.Context, o Origin) (*Document, error) {
	var (
		raw []byte
		err error
	)
	switch o.Kind {
	case KindURL:
		raw, err = l.fetch(ctx, o.URL)
	default:
		raw, err = readLocal(o.Path())
	}
	if err != nil {
		return nil, err
	}
	tree, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o, err)
	}
	return &Document{Origin: o, Raw: string(raw), Tree: tree}, nil
}

func readLocal(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

// fetch issues a single GET; there is no retry.
func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRemoteFetch, rawURL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRemoteFetch, rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: status %s", ErrRemoteFetch, rawURL, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrRemoteFetch, rawURL, err)
	}
	return raw, nil
}

// Parse turns document text into a generic tree.
func Parse(raw []byte) (any, error) {
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return normalize(tree), nil
}

// normalize rewrites maps with non-string keys so the tree is JSON-shaped.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

// IsURL reports whether s is an absolute http(s) URL that survives a parse
// and re-serialization unchanged (compared case-insensitively).
func IsURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	return strings.EqualFold(u.String(), s)
}
