package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// binaryName is the executable inside every release archive.
const binaryName = "tafel"

// Errors the update command tells apart when picking its message.
var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput names the version to move from and, optionally, the release
// to move to. An empty TargetVersion means the newest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is one step of a running update. Stage is a stable
// identifier, Message is text for people.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update swaps the running executable for a release build. With no
// TargetVersion it first asks the release host for the newest tag.
// progress fires once per stage.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	// Builds straight from source report "(devel)" and track no release.
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}

	tag := input.TargetVersion
	if tag == "" {
		progress(UpdateProgress{Stage: "check", Message: "Looking up the latest release..."})
		latest, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !latest.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = latest.LatestVersion
	}

	asset, err := releaseAsset()
	if err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", tag)})
	archive, err := c.fetch(ctx, c.downloadURL(tag, asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(UpdateProgress{Stage: "verify", Message: "Verifying the checksum..."})
	if err := c.verifyArchive(ctx, tag, asset, archive); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: "extract", Message: "Unpacking the new binary..."})
	binary, err := binaryFromArchive(archive, asset)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", asset, err)
	}

	progress(UpdateProgress{Stage: "apply", Message: "Swapping in the new binary..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running binary: %w", err)
	}
	if err := swapBinary(binary, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	progress(UpdateProgress{Stage: "done", Message: fmt.Sprintf("Updated to %s", tag)})
	return nil
}

// verifyArchive checks a downloaded asset against the entry for it in the
// release's checksums.txt.
func (c *Checker) verifyArchive(ctx context.Context, tag, asset string, archive []byte) error {
	manifest, err := c.fetch(ctx, c.downloadURL(tag, "checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(manifest)[asset]
	if !ok {
		return fmt.Errorf("checksums.txt has no entry for %s", asset)
	}
	return verifyChecksum(archive, want)
}

// downloadURL points at one file of a tagged release.
func (c *Checker) downloadURL(tag, name string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, name)
}

// fetch reads the full body at url, insisting on a 200.
func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// releaseAsset names the archive published for the running platform.
func releaseAsset() (string, error) {
	return releaseAssetFor(runtime.GOOS, runtime.GOARCH)
}

func releaseAssetFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		// One universal build covers both Mac architectures.
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch := releaseArch(goarch)
	if arch == "" {
		return "", fmt.Errorf("no release build for architecture %s", goarch)
	}
	switch goos {
	case "linux":
		return binaryName + "_Linux_" + arch + ".tar.gz", nil
	case "windows":
		return binaryName + "_Windows_" + arch + ".zip", nil
	}
	return "", fmt.Errorf("no release build for %s", goos)
}

// releaseArch maps GOARCH onto the uname-style suffixes in asset names.
func releaseArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i386"
	case "arm64":
		return "arm64"
	}
	return ""
}

// parseChecksums reads a checksums.txt manifest, one "<hex>  <filename>"
// pair per line. Lines shaped any other way are skipped.
func parseChecksums(manifest []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			continue
		}
		sums[fields[1]] = fields[0]
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != wantHex {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// binaryFromArchive digs the executable out of a release asset. Windows
// assets are zips holding tafel.exe, the rest tar.gz holding tafel.
func binaryFromArchive(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unpackZip(archive, binaryName+".exe")
	}
	return unpackTarGz(archive, binaryName)
}

func unpackTarGz(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func unpackZip(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		return data, err
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// swapBinary replaces target with newBinary. The new bytes are staged in a
// temp file next to target, read back and compared, then renamed into place
// keeping the old file mode.
func swapBinary(newBinary []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tafel-swap-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(newBinary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Verify what actually landed on disk before it replaces the binary.
	onDisk, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("read back temp file: %w", err)
	}
	if !bytes.Equal(onDisk, newBinary) {
		return fmt.Errorf("%w: temp file changed between write and install", ErrChecksum)
	}

	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}
