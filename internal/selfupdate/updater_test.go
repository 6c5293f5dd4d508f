package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseAssetFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		want    string
		wantErr bool
	}{
		{"darwin amd64", "darwin", "amd64", "tafel_Darwin_all.tar.gz", false},
		{"darwin arm64", "darwin", "arm64", "tafel_Darwin_all.tar.gz", false},
		{"linux amd64", "linux", "amd64", "tafel_Linux_x86_64.tar.gz", false},
		{"linux arm64", "linux", "arm64", "tafel_Linux_arm64.tar.gz", false},
		{"linux 386", "linux", "386", "tafel_Linux_i386.tar.gz", false},
		{"windows amd64", "windows", "amd64", "tafel_Windows_x86_64.zip", false},
		{"windows arm64", "windows", "arm64", "tafel_Windows_arm64.zip", false},
		{"unsupported os", "freebsd", "amd64", "", true},
		{"unsupported arch", "linux", "mips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := releaseAssetFor(tt.goos, tt.goarch)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChecksums(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     map[string]string
	}{
		{
			name:     "normal",
			manifest: "abc123  tafel_Darwin_all.tar.gz\ndef456  tafel_Linux_x86_64.tar.gz\n",
			want: map[string]string{
				"tafel_Darwin_all.tar.gz":   "abc123",
				"tafel_Linux_x86_64.tar.gz": "def456",
			},
		},
		{
			name:     "empty",
			manifest: "",
			want:     map[string]string{},
		},
		{
			name:     "malformed lines skipped",
			manifest: "abc123  file.tar.gz\nbadline\n  \nfoo  bar  baz\nghi789  other.tar.gz\n",
			want: map[string]string{
				"file.tar.gz":  "abc123",
				"other.tar.gz": "ghi789",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseChecksums([]byte(tt.manifest)))
		})
	}
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, hex.EncodeToString(sum[:])))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, strings.Repeat("0", 64))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestBinaryFromArchive(t *testing.T) {
	content := []byte("#!/bin/sh\necho tafel")

	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, "tafel", content)
		got, err := binaryFromArchive(archive, "tafel_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("zip picks the exe", func(t *testing.T) {
		archive := buildZip(t, "tafel.exe", content)
		got, err := binaryFromArchive(archive, "tafel_Windows_x86_64.zip")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("missing binary", func(t *testing.T) {
		archive := buildTarGz(t, "other-file", content)
		_, err := binaryFromArchive(archive, "tafel_Linux_x86_64.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSwapBinary(t *testing.T) {
	t.Run("keeps the old mode", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "tafel")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0755))

		newBinary := []byte("new-binary-content")
		require.NoError(t, swapBinary(newBinary, target))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, newBinary, got)

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("missing target", func(t *testing.T) {
		err := swapBinary([]byte("x"), filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	t.Run("update available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/jsterk/tafel/releases/latest", r.URL.Path)
			_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","html_url":"https://example.com/v1.4.0"}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		result, err := checker.Check(context.Background(), &CheckInput{Version: "v1.2.3"})
		require.NoError(t, err)
		assert.True(t, result.UpdateAvailable)
		assert.Equal(t, "v1.4.0", result.LatestVersion)
		assert.Equal(t, "https://example.com/v1.4.0", result.ReleaseURL)
	})

	t.Run("same version", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v1.2.3","html_url":""}`))
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		result, err := checker.Check(context.Background(), &CheckInput{Version: "1.2.3"})
		require.NoError(t, err)
		assert.False(t, result.UpdateAvailable, "bare version should match the v-prefixed tag")
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL))
		_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.2.3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 403")
	})
}

func TestUpdate(t *testing.T) {
	// Serve the asset this platform would really ask for, so the test runs
	// the same everywhere.
	asset, err := releaseAsset()
	require.NoError(t, err)

	binaryContent := []byte("new-tafel-binary")
	archive := releaseArchive(t, asset, binaryContent)
	archiveSum := sha256.Sum256(archive)
	archiveHex := hex.EncodeToString(archiveSum[:])

	t.Run("replaces the running binary", func(t *testing.T) {
		dir := t.TempDir()
		execPath := filepath.Join(dir, "tafel")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0755))

		manifest := fmt.Sprintf("%s  %s\n", archiveHex, asset)
		server := releaseServer(t, "v2.0.0", asset, archive, []byte(manifest))

		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binaryContent, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build", func(t *testing.T) {
		checker := NewChecker()
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseServer(t, "v1.0.0", asset, archive, nil)

		checker := NewChecker(WithBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		manifest := fmt.Sprintf("%s  %s\n", strings.Repeat("0", 64), asset)
		server := releaseServer(t, "v2.0.0", asset, archive, []byte(manifest))

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("asset missing from manifest", func(t *testing.T) {
		manifest := fmt.Sprintf("%s  %s\n", archiveHex, "tafel_Plan9_all.tar.gz")
		server := releaseServer(t, "v2.0.0", asset, archive, []byte(manifest))

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no entry for")
	})

	t.Run("download failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/jsterk/tafel/releases/latest", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":""}`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		checker := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL))
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

// releaseServer fakes a release host carrying one tagged release: its tag
// lookup, one asset and the checksum manifest.
func releaseServer(t *testing.T, tag, asset string, archive, manifest []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/jsterk/tafel/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":""}`, tag)
	})
	mux.HandleFunc("/jsterk/tafel/releases/download/"+tag+"/"+asset, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})
	mux.HandleFunc("/jsterk/tafel/releases/download/"+tag+"/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(manifest)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// releaseArchive packs content as the kind of archive the asset name
// promises, under the executable name that platform expects.
func releaseArchive(t *testing.T, asset string, content []byte) []byte {
	t.Helper()
	if strings.HasSuffix(asset, ".zip") {
		return buildZip(t, "tafel.exe", content)
	}
	return buildTarGz(t, "tafel", content)
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
