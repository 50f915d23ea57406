package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/chasten/pkg/schema"
	"github.com/dkoosis/chasten/pkg/source"
)

const classChecks = `checks:
  - name: class-definition
    code: CDF
    id: C001
    pattern: './/ClassDef'
    count:
      min: 1
      max: 50
  - name: all-function-definition
    code: AFD
    id: F001
    pattern: './/FunctionDef'
    count:
      min: 1
`

const nestedIfChecks = `checks:
  - name: single-nested-if
    code: SNI
    id: CL001
    pattern: './/FunctionDef/body//If'
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(nil)
	require.NoError(t, err)
	r.Discover = func() (string, error) { return "", errors.New("no discovery in tests") }
	return r
}

func TestResolve_Directory_MergesInDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yml", "chasten:\n  checks-file:\n    - checks.yml\n    - nested.yml\n")
	writeFile(t, dir, "checks.yml", classChecks)
	writeFile(t, dir, "nested.yml", nestedIfChecks)

	res, err := newResolver(t).Resolve(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"checks.yml", "nested.yml"}, res.ChecksFiles)
	assert.Equal(t, dir, res.Location)
	require.Len(t, res.Checks, 3)
	assert.Equal(t, "C001", res.Checks[0].ID)
	assert.Equal(t, "F001", res.Checks[1].ID)
	assert.Equal(t, "CL001", res.Checks[2].ID)

	lo, hi := res.Checks[1].Bounds()
	require.NotNil(t, lo)
	assert.Equal(t, 1, *lo)
	assert.Nil(t, hi)
	assert.False(t, res.Checks[2].Enforceable())
}

func TestResolve_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "chasten:\n  checks-file:\n    - checks.yml\n")
	writeFile(t, dir, "checks.yml", nestedIfChecks)

	res, err := newResolver(t).Resolve(context.Background(), filepath.Join(dir, "custom.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", res.Origin.Name)
	assert.Len(t, res.Checks, 1)
}

func TestResolve_DefaultDiscovery(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yml", "chasten:\n  checks-file:\n    - checks.yml\n")
	writeFile(t, dir, "checks.yml", classChecks)

	r := newResolver(t)
	r.Discover = func() (string, error) { return dir, nil }

	res, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, res.Checks, 2)
	assert.Equal(t, source.KindLocal, res.Origin.Kind)
}

func TestResolve_EmptyChecksList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yml", "chasten:\n  checks-file: []\n")

	res, err := newResolver(t).Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, res.Checks)
	assert.Empty(t, res.ChecksFiles)
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "missing main config",
			files:   map[string]string{},
			wantErr: source.ErrNotFound,
		},
		{
			name:    "main config fails schema",
			files:   map[string]string{"config.yml": "chasten:\n  checks: []\n"},
			wantErr: schema.ErrInvalid,
		},
		{
			name:    "main config does not parse",
			files:   map[string]string{"config.yml": "chasten: [\n"},
			wantErr: source.ErrParse,
		},
		{
			name: "missing checks file",
			files: map[string]string{
				"config.yml": "chasten:\n  checks-file:\n    - checks.yml\n",
			},
			wantErr: source.ErrNotFound,
		},
		{
			name: "second checks file invalid",
			files: map[string]string{
				"config.yml": "chasten:\n  checks-file:\n    - checks.yml\n    - bad.yml\n",
				"checks.yml": classChecks,
				"bad.yml":    "checks:\n  - name: only-a-name\n",
			},
			wantErr: schema.ErrInvalid,
		},
		{
			name: "url reference from local config",
			files: map[string]string{
				"config.yml": "chasten:\n  checks-file:\n    - https://example.com/checks.yml\n",
			},
			wantErr: ErrMixedOrigin,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			res, err := newResolver(t).Resolve(context.Background(), dir)
			assert.Nil(t, res, "no partial resolution on failure")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, IsResolutionError(err))
		})
	}
}

func TestResolve_InvalidLocation(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := newResolver(t).Resolve(context.Background(), missing)
	assert.True(t, errors.Is(err, ErrInvalidLocation), "got %v", err)

	_, err = newResolver(t).Resolve(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidLocation), "failed discovery, got %v", err)
}

func newRemote(t *testing.T, configBody func(base string) string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config.yml":
			_, _ = w.Write([]byte(configBody(srv.URL)))
		case "/checks.yml":
			_, _ = w.Write([]byte(classChecks))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolve_RemoteConfigWithRemoteChecks(t *testing.T) {
	srv := newRemote(t, func(base string) string {
		return fmt.Sprintf("chasten:\n  checks-file:\n    - %s/checks.yml\n", base)
	})
	r := newResolver(t)
	r.Loader = &source.Loader{Client: srv.Client()}

	res, err := r.Resolve(context.Background(), srv.URL+"/config.yml")
	require.NoError(t, err)
	assert.Equal(t, source.KindURL, res.Origin.Kind)
	assert.Equal(t, srv.URL+"/config.yml", res.Location)
	assert.Len(t, res.Checks, 2)
}

func TestResolve_RemoteConfigWithLocalChecks(t *testing.T) {
	srv := newRemote(t, func(string) string {
		return "chasten:\n  checks-file:\n    - checks.yml\n"
	})
	r := newResolver(t)
	r.Loader = &source.Loader{Client: srv.Client()}

	res, err := r.Resolve(context.Background(), srv.URL+"/config.yml")
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrMixedOrigin), "got %v", err)
}

func TestResolve_RemoteConfigNotFound(t *testing.T) {
	srv := newRemote(t, func(string) string { return "" })
	r := newResolver(t)
	r.Loader = &source.Loader{Client: srv.Client()}

	_, err := r.Resolve(context.Background(), srv.URL+"/missing.yml")
	assert.True(t, errors.Is(err, source.ErrRemoteFetch), "got %v", err)
}

func TestDefaultDirectory_UsesXDGConfigHome(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	t.Setenv("HOME", filepath.Join(root, "home"))

	dir, err := DefaultDirectory()
	if err != nil {
		t.Skipf("user config dir unavailable on this platform: %v", err)
	}
	if os.Getenv("XDG_CONFIG_HOME") == root && filepath.Dir(dir) == root {
		assert.Equal(t, filepath.Join(root, ApplicationName), dir)
	}
	assert.Equal(t, ApplicationName, filepath.Base(dir))
}

func TestLocation_Priority(t *testing.T) {
	t.Setenv(EnvConfig, "/from/env")
	assert.Equal(t, "/from/flag", Location("/from/flag"))
	assert.Equal(t, "/from/env", Location(""))

	t.Setenv(EnvConfig, "")
	assert.Equal(t, "", Location(""))
}
