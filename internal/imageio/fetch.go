package imageio

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	"github.com/yyyoichi/httpcache-go"
)

// IsURL reports whether src names a remote image rather than a file.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetcher downloads source images, keeping responses in a directory cache
// so the same URL is not downloaded again.
type Fetcher struct {
	client httpcache.Client
}

func NewFetcher(cacheDir string) *Fetcher {
	if !strings.HasSuffix(cacheDir, string(os.PathSeparator)) {
		cacheDir += string(os.PathSeparator)
	}
	return &Fetcher{
		client: httpcache.Client{
			Client:  http.DefaultClient,
			Cache:   httpcache.NewStorageCache(cacheDir),
			Handler: httpcache.NewDefaultHandler(),
		},
	}
}

// Fetch decodes the image served at uri.
func (f *Fetcher) Fetch(uri string) (image.Image, string, error) {
	resp, err := f.client.Get(uri)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	return Decode(resp.Body)
}

// Open reads src from a URL through f, or from the file system.
func (f *Fetcher) Open(src string) (image.Image, string, error) {
	if IsURL(src) {
		return f.Fetch(src)
	}
	return ReadFile(src)
}
