package release

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/minuteclass/minuteclass/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s","published_at":"2026-10-01T10:00:00Z"}`, tag, tag)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer release", "v1.2.0", "v1.3.0", true},
		{"same version", "v1.3.0", "v1.3.0", false},
		{"ahead of release", "v1.4.0", "v1.3.0", false},
		{"missing v prefix", "1.2.0", "v1.10.0", true},
		{"prerelease older", "v1.3.0-rc.1", "v1.3.0", true},
		{"short version", "v1.3", "v1.3.1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := latestServer(t, tt.latest)
			res, err := NewChecker(WithBaseURL(srv.URL)).Check(t.Context(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.UpdateAvailable)
			assert.Equal(t, tt.latest, res.Latest)
			assert.Equal(t, "https://example.com/"+tt.latest, res.URL)
			assert.Equal(t, 2026, res.PublishedAt.Year())
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	srv := latestServer(t, "not-a-version")

	_, err := NewChecker(WithBaseURL(srv.URL)).Check(t.Context(), DevVersion)
	assert.ErrorIs(t, err, ErrDevBuild)

	_, err = NewChecker(WithBaseURL(srv.URL)).Check(t.Context(), "banana")
	assert.ErrorContains(t, err, "invalid version")

	_, err = NewChecker(WithBaseURL(srv.URL)).Check(t.Context(), "v1.0.0")
	assert.ErrorContains(t, err, "invalid tag")

	_, err = NewChecker(WithBaseURL(srv.URL), WithRepository("other", "repo")).Check(t.Context(), "v1.0.0")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestAssetFor(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"darwin", "arm64", "minuteclass_Darwin_all.tar.gz", false},
		{"linux", "amd64", "minuteclass_Linux_x86_64.tar.gz", false},
		{"linux", "386", "minuteclass_Linux_i386.tar.gz", false},
		{"windows", "arm64", "minuteclass_Windows_arm64.zip", false},
		{"linux", "mips", "", true},
		{"plan9", "amd64", "", true},
	}
	for _, tt := range tests {
		got, err := assetFor(tt.goos, tt.goarch)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.goos, tt.goarch)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("abc  a.tar.gz\nbroken\n\nx y z\ndef  b.zip\n"))
	assert.Equal(t, map[string]string{"a.tar.gz": "abc", "b.zip": "def"}, got)
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "dist/" + name, Size: int64(len(content)), Mode: 0o755, Typeflag: tar.TypeReg}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tar.gz assets only")
	}
	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("no release asset for this platform: %v", err)
	}

	newBinary := []byte("#!/bin/sh\necho minuteclass v2")
	archive := buildTarGz(t, "minuteclass", newBinary)

	serve := func(sum string) *httptest.Server {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/repos/minuteclass/minuteclass/releases/latest":
				w.Write([]byte(`{"tag_name":"v2.0.0"}`))
			case "/minuteclass/minuteclass/releases/download/v2.0.0/" + asset:
				w.Write(archive)
			case "/minuteclass/minuteclass/releases/download/v2.0.0/checksums.txt":
				fmt.Fprintf(w, "%s  %s\n", sum, asset)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("replaces binary", func(t *testing.T) {
		srv := serve(sha256Hex(archive))
		exe := filepath.Join(t.TempDir(), "minuteclass")
		require.NoError(t, os.WriteFile(exe, []byte("old"), 0o755))

		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return exe, nil }))
		var stages []Stage
		err := c.Install(t.Context(), "v1.0.0", func(s Stage, _ string) { stages = append(stages, s) })
		require.NoError(t, err)

		got, err := os.ReadFile(exe)
		require.NoError(t, err)
		assert.Equal(t, newBinary, got)
		info, err := os.Stat(exe)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		assert.Equal(t, []Stage{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		srv := serve("0000")
		c := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL))
		err := c.Install(t.Context(), "v1.0.0", nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := serve("")
		c := NewChecker(WithBaseURL(srv.URL))
		assert.ErrorIs(t, c.Install(t.Context(), "v2.0.0", nil), ErrAlreadyLatest)
	})
}

func TestExtract_MissingBinary(t *testing.T) {
	archive := buildTarGz(t, "README.md", []byte("hi"))
	_, err := extract(archive, "minuteclass_Linux_x86_64.tar.gz")
	assert.ErrorContains(t, err, "not found")
}
