// Package media provides the on-disk product image cache. Product images are
// fetched once, re-encoded as webp thumbnails, and served to the UI shell
// from local disk so browsing stays usable offline.
package media

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ImageCache downloads product images and keeps resized webp thumbnails on
// disk, content-addressed by source URL.
type ImageCache struct {
	baseDir    string
	maxBytes   int64
	maxEdge    int
	httpClient *http.Client
	logger     *logging.ChanneledLogger
}

// NewImageCache creates an image cache rooted at baseDir.
func NewImageCache(baseDir string, maxMB, maxEdge int, logger *logging.ChanneledLogger) (*ImageCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image cache directory: %w", err)
	}
	return &ImageCache{
		baseDir:    baseDir,
		maxBytes:   int64(maxMB) * 1024 * 1024,
		maxEdge:    maxEdge,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     logger,
	}, nil
}

// Thumbnail returns the local path of the cached thumbnail for srcURL,
// fetching and converting it on a miss.
func (ic *ImageCache) Thumbnail(srcURL string) (string, error) {
	start := time.Now()

	path := ic.pathFor(srcURL)
	if _, err := os.Stat(path); err == nil {
		if ic.logger != nil {
			ic.logger.Media().Debug("Image cache hit", "path", filepath.Base(path))
		}
		return path, nil
	}

	resp, err := ic.httpClient.Get(srcURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image fetch returned HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}

	// Fit preserves aspect ratio; small images pass through unscaled.
	resized := imaging.Fit(img, ic.maxEdge, ic.maxEdge, imaging.Lanczos)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer out.Close()

	if err := webp.Encode(out, resized, &webp.Options{Quality: 80}); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	if ic.logger != nil {
		ic.logger.Media().Info("Image cached", "path", filepath.Base(path), "duration", time.Since(start))
	}

	ic.pruneIfOver()
	return path, nil
}

// decodeImage handles webp alongside the formats imaging decodes natively.
func decodeImage(raw []byte) (image.Image, error) {
	if len(raw) >= 12 && bytes.Equal(raw[0:4], []byte("RIFF")) && bytes.Equal(raw[8:12], []byte("WEBP")) {
		img, err := webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp image: %w", err)
		}
		return img, nil
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (ic *ImageCache) pathFor(srcURL string) string {
	sum := sha256.Sum256([]byte(srcURL))
	return filepath.Join(ic.baseDir, hex.EncodeToString(sum[:16])+".webp")
}

// pruneIfOver evicts oldest thumbnails until the cache fits its budget.
func (ic *ImageCache) pruneIfOver() {
	entries, err := os.ReadDir(ic.baseDir)
	if err != nil {
		return
	}

	type cachedFile struct {
		path    string
		size    int64
		modTime time.Time
	}

	var files []cachedFile
	var total int64
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || entry.IsDir() {
			continue
		}
		files = append(files, cachedFile{
			path:    filepath.Join(ic.baseDir, entry.Name()),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		total += info.Size()
	}

	if total <= ic.maxBytes {
		return
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })

	evicted := 0
	for _, f := range files {
		if total <= ic.maxBytes {
			break
		}
		if err := os.Remove(f.path); err == nil {
			total -= f.size
			evicted++
		}
	}

	if ic.logger != nil && evicted > 0 {
		ic.logger.Media().Info("Image cache pruned", "evicted", evicted, "bytes", total)
	}
}
