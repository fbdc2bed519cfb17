package source

import (
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

type job struct {
	kind Kind
	path string
	rect *image.Rectangle
}

type service struct {
	running   atomic.Bool
	latest    atomic.Pointer[Snapshot]
	lastErr   atomic.Pointer[string]
	failedAt  atomic.Int64
	loads     atomic.Uint64
	failures  atomic.Uint64
	loadNanos atomic.Uint64
	sequence  atomic.Uint64
	jobs      chan job
	stop      chan struct{}
	wg        sync.WaitGroup
	grab      Grabber
	logger    *slog.Logger
}

// NewService constructs a loader. grab may be nil to use ScreenGrabber.
func NewService(logger *slog.Logger, grab Grabber) Service {
	if grab == nil {
		grab = ScreenGrabber
	}
	return &service{grab: grab, logger: logger, jobs: make(chan job, 1)}
}

func (s *service) Running() bool { return s.running.Load() }

func (s *service) Start() {
	if s.running.Swap(true) {
		return
	}
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.running.Store(false)
				if s.logger != nil {
					s.logger.Error("source worker panic", "error", r, "stack", string(debug.Stack()))
				}
			}
		}()
		s.loop()
	}()
}

func (s *service) Stop() {
	if !s.running.Swap(false) {
		return
	}
	close(s.stop)
	s.wg.Wait()
}

// OpenFile queues a decode of path. A queued but unstarted request is replaced.
func (s *service) OpenFile(path string) bool {
	return s.enqueue(job{kind: KindFile, path: path})
}

// CaptureScreen queues a screen capture, of rect when non-nil.
func (s *service) CaptureScreen(rect *image.Rectangle) bool {
	return s.enqueue(job{kind: KindScreen, rect: rect})
}

func (s *service) enqueue(j job) bool {
	if !s.running.Load() {
		return false
	}
	for {
		select {
		case s.jobs <- j:
			return true
		default:
		}
		select {
		case <-s.jobs:
		default:
		}
	}
}

func (s *service) Latest() Snapshot {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}
	}
	return *snap
}

func (s *service) Stats() Stats {
	loads := s.loads.Load()
	var avg time.Duration
	if loads > 0 {
		avg = time.Duration(s.loadNanos.Load() / loads)
	}
	st := Stats{
		Loads:    loads,
		Failures: s.failures.Load(),
		AvgLoad:  avg,
		LastLoad: s.Latest().LoadedAt,
		Sequence: s.sequence.Load(),
	}
	if e := s.lastErr.Load(); e != nil {
		st.LastError = *e
		st.LastFailure = time.Unix(0, s.failedAt.Load())
	}
	return st
}

func (s *service) loop() {
	for {
		select {
		case <-s.stop:
			return
		case j := <-s.jobs:
			s.run(j)
		}
	}
}

func (s *service) run(j job) {
	start := time.Now()
	snap, err := s.load(j)
	if err != nil {
		s.failures.Add(1)
		msg := err.Error()
		s.lastErr.Store(&msg)
		s.failedAt.Store(time.Now().UnixNano())
		if s.logger != nil {
			s.logger.Error("source load failed", "kind", j.kind.String(), "error", err)
		}
		return
	}
	s.loadNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.loads.Add(1)
	snap.LoadedAt = time.Now()
	snap.Sequence = s.sequence.Add(1)
	s.latest.Store(snap)
	if s.logger != nil {
		b := snap.Image.Bounds()
		s.logger.Info("source loaded", "kind", snap.Kind.String(), "origin", snap.Origin, "format", snap.Format,
			"width", b.Dx(), "height", b.Dy(), "elapsed", time.Since(start))
	}
}

func (s *service) load(j job) (*Snapshot, error) {
	switch j.kind {
	case KindFile:
		img, format, err := DecodeFile(j.path)
		if err != nil {
			return nil, err
		}
		return &Snapshot{Image: img, Kind: KindFile, Origin: j.path, Format: format}, nil
	case KindScreen:
		img, err := s.grab(j.rect)
		if err != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}
		if img == nil {
			return nil, fmt.Errorf("capture screen: no image")
		}
		origin := "screen"
		if j.rect != nil {
			origin = j.rect.String()
		}
		return &Snapshot{Image: img, Kind: KindScreen, Origin: origin, Format: "rgba"}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %d", j.kind)
	}
}
