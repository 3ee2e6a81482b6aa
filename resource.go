package cascade

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Loader fetches and decodes one image resource.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) { return f(ctx, url) }

// FileLoader reads resources from the file system, relative to Root. PNG,
// JPEG, GIF, BMP and WebP are decoded.
type FileLoader struct {
	Root string
}

// Load opens and decodes the file named by url.
func (l FileLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := url
	if l.Root != "" && !filepath.IsAbs(url) {
		path = filepath.Join(l.Root, filepath.FromSlash(url))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// loadResult is one settled resource or, with final set, the end of a batch.
type loadResult struct {
	url    string
	img    image.Image
	final  bool
	err    error
	onDone func(error)
}

// ResourceCache maps resource URLs to decoded images. Lookups and stores
// happen on the frame thread; background batches hand their results over
// through a queue drained by flush.
type ResourceCache struct {
	loader Loader
	images map[string]image.Image

	mu       sync.Mutex
	settled  []loadResult
	inFlight int
}

// NewResourceCache creates an empty cache that loads through l.
func NewResourceCache(l Loader) *ResourceCache {
	return &ResourceCache{loader: l, images: make(map[string]image.Image)}
}

// SetLoader replaces the loader used by later loads.
func (c *ResourceCache) SetLoader(l Loader) { c.loader = l }

// Get returns the loaded image of url, or nil if it is not loaded (yet).
func (c *ResourceCache) Get(url string) image.Image {
	return c.images[url]
}

// Put stores an already decoded image under url.
func (c *ResourceCache) Put(url string, img image.Image) {
	c.images[url] = img
}

// Len returns the number of loaded images.
func (c *ResourceCache) Len() int { return len(c.images) }

// Preload loads urls one at a time, in order, and stores each one as soon as
// it is decoded. Failures do not stop the batch; they come back joined.
func (c *ResourceCache) Preload(ctx context.Context, urls []string) error {
	var errs []error
	for _, url := range urls {
		img, err := c.load(ctx, url)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		c.images[url] = img
	}
	return errors.Join(errs...)
}

// LoadAsync loads urls one at a time, in order, on a background goroutine.
// Each image becomes visible to Get at the first flush after it decoded;
// onDone runs on the flushing goroutine after the last one settled, with the
// joined errors of the batch. An empty batch completes immediately.
func (c *ResourceCache) LoadAsync(ctx context.Context, urls []string, onDone func(error)) {
	if len(urls) == 0 {
		if onDone != nil {
			onDone(nil)
		}
		return
	}
	urls = append([]string(nil), urls...)
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()

	go func() {
		var errs []error
		for _, url := range urls {
			img, err := c.load(ctx, url)
			if err != nil {
				errs = append(errs, err)
			}
			c.push(loadResult{url: url, img: img, err: err})
		}
		c.push(loadResult{final: true, err: errors.Join(errs...), onDone: onDone})
	}()
}

// Pending reports whether a background batch has not been delivered yet.
func (c *ResourceCache) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

func (c *ResourceCache) load(ctx context.Context, url string) (image.Image, error) {
	if c.loader == nil {
		return nil, fmt.Errorf("load %s: no loader", url)
	}
	img, err := c.loader.Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	if img == nil {
		return nil, fmt.Errorf("load %s: loader returned no image", url)
	}
	return img, nil
}

func (c *ResourceCache) push(r loadResult) {
	c.mu.Lock()
	c.settled = append(c.settled, r)
	c.mu.Unlock()
}

// flush stores the images settled since the last flush and runs the
// completion callbacks of finished batches.
func (c *ResourceCache) flush() {
	c.mu.Lock()
	settled := c.settled
	c.settled = nil
	c.mu.Unlock()

	for _, r := range settled {
		switch {
		case r.final:
			c.mu.Lock()
			c.inFlight--
			c.mu.Unlock()
			Logger().Info("resource batch loaded", "failed", r.err != nil)
			if r.onDone != nil {
				r.onDone(r.err)
			}
		case r.err != nil:
			Logger().Warn("resource failed", "url", r.url, "err", r.err)
		default:
			c.images[r.url] = r.img
		}
	}
}

// --- World shortcuts ---

// Resources returns the world's resource cache.
func (w *World) Resources() *ResourceCache { return w.resources }

// SetLoader replaces the loader of the world's resource cache.
func (w *World) SetLoader(l Loader) { w.resources.SetLoader(l) }

// LoadResources loads urls in the background, one at a time and in order.
// onComplete runs at the start of the first Frame after the last image
// settled, with the joined load errors.
func (w *World) LoadResources(ctx context.Context, urls []string, onComplete func(error)) {
	w.resources.LoadAsync(ctx, urls, onComplete)
}

// Preload loads urls synchronously, one at a time and in order.
func (w *World) Preload(ctx context.Context, urls []string) error {
	return w.resources.Preload(ctx, urls)
}

// UseResource returns the loaded image of url, or nil.
func (w *World) UseResource(url string) image.Image {
	return w.resources.Get(url)
}
