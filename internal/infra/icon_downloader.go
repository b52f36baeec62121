package infra

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"coinboard/internal/domain"

	"github.com/disintegration/imaging"
)

// IconDownloader fetches coin logos and stores square thumbnails for the table
type IconDownloader struct {
	basePath string
	size     int
	client   *http.Client
}

// NewIconDownloader creates a new IconDownloader.
// An empty dir resolves to the per-user config directory.
func NewIconDownloader(dir string, size int) (*IconDownloader, error) {
	path := dir
	if path == "" {
		var err error
		path, err = getAssetsPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assets path: %w", err)
		}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	if size <= 0 {
		size = 32
	}

	// Optimize HTTP Transport to prevent connection leaks
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxConnsPerHost = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &IconDownloader{
		basePath: path,
		size:     size,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}, nil
}

// DownloadIcon stores the thumbnail for coin id from imageURL if it is not on disk yet.
// Returns the local file path on success.
func (d *IconDownloader) DownloadIcon(ctx context.Context, id, imageURL string) (string, error) {
	// Security: the id becomes a file name
	if !domain.ValidCoinID(id) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCoinID, id)
	}

	filePath := d.IconPath(id)
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	if imageURL == "" {
		return "", fmt.Errorf("no image url for %s", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resizedImg := imaging.Resize(srcImg, d.size, d.size, imaging.Lanczos)

	// Each download encodes into its own temp file, then renames it into place
	tmp, err := os.CreateTemp(d.basePath, "."+id+"-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := imaging.Encode(tmp, resizedImg, imaging.PNG); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to encode resized image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return filePath, nil
}

// IconPath returns the local path for a coin's thumbnail
func (d *IconDownloader) IconPath(id string) string {
	return filepath.Join(d.basePath, id+".png")
}

// HasIcon reports whether the thumbnail for id is already stored
func (d *IconDownloader) HasIcon(id string) bool {
	if !domain.ValidCoinID(id) {
		return false
	}
	_, err := os.Stat(d.IconPath(id))
	return err == nil
}

func getAssetsPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "coinboard", "assets", "icons"), nil
}
