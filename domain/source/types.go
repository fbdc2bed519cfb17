package source

import (
	"errors"
	"image"
	"time"
)

// ErrUnsupportedFormat is returned for files no registered decoder accepts.
var ErrUnsupportedFormat = errors.New("source: unsupported image format")

// Kind tells where a snapshot came from.
type Kind int

const (
	KindNone Kind = iota
	KindFile
	KindScreen
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindScreen:
		return "screen"
	default:
		return "none"
	}
}

// Snapshot carries the latest loaded image and metadata.
type Snapshot struct {
	Image    image.Image
	Kind     Kind
	Origin   string // file path or screen rectangle
	Format   string
	LoadedAt time.Time
	Sequence uint64
}

// Stats summarises loader behaviour for instrumentation.
type Stats struct {
	Loads       uint64
	Failures    uint64
	AvgLoad     time.Duration
	LastLoad    time.Time
	LastFailure time.Time
	Sequence    uint64
	LastError   string
}

// Grabber captures screen pixels. A nil rectangle means the whole screen.
type Grabber func(rect *image.Rectangle) (*image.RGBA, error)

// Service loads source images off the UI thread and exposes the latest result.
type Service interface {
	Start()
	Stop()
	Running() bool
	OpenFile(path string) bool
	CaptureScreen(rect *image.Rectangle) bool
	Latest() Snapshot
	Stats() Stats
}
