package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_LocalDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yml", "chasten:\n  checks-file:\n    - checks.yml\n")

	var l Loader
	doc, err := l.Load(context.Background(), Local(dir, "config.yml"))
	require.NoError(t, err)

	assert.Contains(t, doc.Raw, "checks-file")
	tree, ok := doc.Tree.(map[string]any)
	require.True(t, ok, "tree should be a string-keyed map, got %T", doc.Tree)
	inner := tree["chasten"].(map[string]any)
	assert.Equal(t, []any{"checks.yml"}, inner["checks-file"])
}

func TestLoad_LocalMissing(t *testing.T) {
	var l Loader
	doc, err := l.Load(context.Background(), Local(t.TempDir(), "config.yml"))
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLoad_DirectoryIsNotADocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config.yml"), 0o755))

	var l Loader
	_, err := l.Load(context.Background(), Local(dir, "config.yml"))
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yml", "chasten: [unclosed\n")

	var l Loader
	doc, err := l.Load(context.Background(), Local(dir, "bad.yml"))
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, ErrParse), "got %v", err)
}

func TestLoad_EmptyDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.yml", "")

	var l Loader
	doc, err := l.Load(context.Background(), Local(dir, "empty.yml"))
	require.NoError(t, err)
	assert.Nil(t, doc.Tree)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/checks.yml":
			_, _ = w.Write([]byte("checks:\n  - name: a\n    id: b\n    pattern: c\n    code: d\n"))
		case "/broken.yml":
			_, _ = w.Write([]byte("checks: [\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := Loader{Client: srv.Client()}

	doc, err := l.Load(context.Background(), Remote(srv.URL+"/checks.yml"))
	require.NoError(t, err)
	assert.Equal(t, KindURL, doc.Origin.Kind)
	assert.Contains(t, doc.Raw, "pattern: c")

	_, err = l.Load(context.Background(), Remote(srv.URL+"/missing.yml"))
	assert.True(t, errors.Is(err, ErrRemoteFetch), "got %v", err)

	_, err = l.Load(context.Background(), Remote(srv.URL+"/broken.yml"))
	assert.True(t, errors.Is(err, ErrParse), "got %v", err)
}

func TestDocument_Decode(t *testing.T) {
	doc := &Document{Raw: "checks:\n  - name: a\n"}
	var out struct {
		Checks []struct {
			Name string `yaml:"name"`
		} `yaml:"checks"`
	}
	require.NoError(t, doc.Decode(&out))
	require.Len(t, out.Checks, 1)
	assert.Equal(t, "a", out.Checks[0].Name)
}

func TestParse_NonStringKeysAreStringified(t *testing.T) {
	tree, err := Parse([]byte("1: one\nnested:\n  2: two\n"))
	require.NoError(t, err)
	m, ok := tree.(map[string]any)
	require.True(t, ok, "got %T", tree)
	assert.Equal(t, "one", m["1"])
	assert.Equal(t, map[string]any{"2": "two"}, m["nested"])
}

func TestFile_SplitsPath(t *testing.T) {
	o := File(filepath.Join("a", "b", "config.yml"))
	assert.Equal(t, KindLocal, o.Kind)
	assert.Equal(t, filepath.Join("a", "b"), o.Dir)
	assert.Equal(t, "config.yml", o.Name)
	assert.Equal(t, filepath.Join("a", "b", "config.yml"), o.Path())
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/chasten/config.yml", true},
		{"http://example.com", true},
		{"HTTPS://Example.com/config.yml", true},
		{"ftp://example.com/config.yml", false},
		{"example.com/config.yml", false},
		{"/home/user/.config/chasten", false},
		{"config.yml", false},
		{"https://", false},
		{"", false},
		{"https://example.com/a b", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.input))
		})
	}
}
