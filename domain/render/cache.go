package render

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/region-cropper-go/ui/images"
)

// ScaledCache keeps resampled copies of the source image per zoom level so
// repaints only composite outlines.
type ScaledCache struct {
	cache  *lru.Cache[float64, *image.RGBA]
	source image.Image
}

// NewScaledCache creates a cache holding up to size scales.
func NewScaledCache(size int) (*ScaledCache, error) {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[float64, *image.RGBA](size)
	if err != nil {
		return nil, err
	}
	return &ScaledCache{cache: c}, nil
}

// Get returns src resampled to scale, computing it on miss. A different src
// than the previous call drops every cached scale.
func (c *ScaledCache) Get(src image.Image, scale float64) *image.RGBA {
	if src == nil {
		return nil
	}
	if src != c.source {
		c.cache.Purge()
		c.source = src
	}
	if img, ok := c.cache.Get(scale); ok {
		return img
	}
	img := images.ScaleBy(src, scale)
	c.cache.Add(scale, img)
	return img
}

// Purge empties the cache.
func (c *ScaledCache) Purge() {
	c.cache.Purge()
	c.source = nil
}

// Len returns the number of cached scales.
func (c *ScaledCache) Len() int { return c.cache.Len() }
