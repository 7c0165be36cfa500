// Package cache keeps downloaded images and palettes on disk so repeated runs
// against the same URL do not fetch it again.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/dyematch/internal/util/http"
)

// Options configures a cached download.
type Options struct {
	// Dir defaults to DefaultDir().
	Dir string

	// Refresh downloads the URL again even when a cached copy exists.
	Refresh bool

	// Fetch is passed through to the HTTP client.
	Fetch httputil.FetchOptions
}

// DefaultDir returns the default cache directory, ~/.cache/dyematch on Linux.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "dyematch"), nil
	}
	return filepath.Join(cacheDir, "dyematch"), nil
}

// Filename returns the deterministic cache filename for url: a hash of the URL
// plus its extension, so decoders can still tell formats apart. Compound
// extensions such as ".json.xz" are kept whole.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	base := url
	if i := strings.IndexAny(base, "?#"); i != -1 {
		base = base[:i]
	}
	base = base[strings.LastIndexByte(base, '/')+1:]

	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".xz") {
		ext = filepath.Ext(strings.TrimSuffix(base, ext)) + ext
	}
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}

	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Download returns the local path of url, fetching it into the cache first
// when no cached copy exists.
func Download(ctx context.Context, url string, opts Options) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", errors.New("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, Filename(url))
	if !opts.Refresh {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}

	// Write then rename so an interrupted download never leaves a partial file
	// at the cached path.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store cache file: %w", err)
	}

	return path, nil
}
