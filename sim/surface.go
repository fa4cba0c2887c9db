package sim

import (
	"errors"

	"github.com/anisan-cli/vidman/autoplay"
)

var (
	// ErrNotAllowed is returned by a surface whose playback the platform refuses.
	ErrNotAllowed = errors.New("NotAllowedError: play() failed because the user didn't interact with the document first")
	// ErrNoSurface is returned by the factory when surface creation is set to fail.
	ErrNoSurface = errors.New("cannot create playback surface")
)

// Policy decides how the simulated platform treats a playback attempt without a user gesture.
type Policy struct {
	// AutoplayAllowed lets muted inline video start on its own.
	AutoplayAllowed bool
	// FailSurface makes surface creation fail.
	FailSurface bool
	// Hold, when non-nil, delays every surface creation until it is closed.
	Hold <-chan struct{}
}

type surface struct {
	opts    autoplay.SurfaceOptions
	allowed bool
	paused  bool
}

func (s *surface) Play() error {
	if !s.allowed || !s.opts.Muted || !s.opts.PlaysInline {
		return ErrNotAllowed
	}
	s.paused = false
	return nil
}

func (s *surface) Paused() bool { return s.paused }

// SurfaceFactory returns a factory for detection surfaces obeying policy.
func SurfaceFactory(policy Policy) autoplay.SurfaceFactory {
	return func(opts autoplay.SurfaceOptions) (autoplay.Surface, error) {
		if policy.Hold != nil {
			<-policy.Hold
		}
		if policy.FailSurface {
			return nil, ErrNoSurface
		}
		return &surface{opts: opts, allowed: policy.AutoplayAllowed, paused: true}, nil
	}
}
