// Package playback advances a playhead against wall-clock time and keeps
// the most recently rendered frame available to the host UI.
package playback

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashvale/cutline/internal/domain"
	"github.com/ashvale/cutline/internal/render"
	"github.com/ashvale/cutline/internal/timeline"
)

// State is the ephemeral playback position and transport settings. It is
// never persisted with a project.
type State struct {
	Playhead  float64
	IsPlaying bool
	LoopStart *float64
	LoopEnd   *float64
	Volume    float64
	Rate      float64
}

// Bridge drives playback: it owns the State, a reference to the shared
// timeline and the renderer, and a single-slot buffer holding the last
// rendered frame. The host's repaint loop is expected to call Update on a
// fixed tick; the bridge is driven by that single logical owner and does
// no locking of its own.
type Bridge struct {
	handle   *timeline.Handle
	renderer *render.Renderer
	state    State
	frame    *domain.VideoFrame

	lastUpdate time.Time
	now        func() time.Time

	log zerolog.Logger
}

// NewBridge builds a bridge over the shared timeline handle and renderer.
func NewBridge(handle *timeline.Handle, renderer *render.Renderer, log zerolog.Logger) *Bridge {
	b := &Bridge{
		handle:   handle,
		renderer: renderer,
		state:    State{Volume: 1.0, Rate: 1.0},
		now:      time.Now,
		log:      log,
	}
	b.lastUpdate = b.now()
	return b
}

// Update advances the playhead by elapsed wall-clock time scaled by the
// playback rate, wraps the loop region when one is set, clamps to the
// timeline bounds and re-renders the current frame. The pacing timestamp
// always resets, so a pause does not accumulate elapsed time.
func (b *Bridge) Update(ctx context.Context) {
	now := b.now()
	if b.state.IsPlaying {
		elapsed := now.Sub(b.lastUpdate).Seconds()
		b.state.Playhead += elapsed * b.state.Rate
		if b.state.LoopStart != nil && b.state.LoopEnd != nil && b.state.Playhead >= *b.state.LoopEnd {
			b.state.Playhead = *b.state.LoopStart
		}
	}
	b.lastUpdate = now

	b.state.Playhead = clamp(b.state.Playhead, 0, b.maxTime())
	b.renderCurrent(ctx)
}

// Seek clamps t to the timeline bounds, moves the playhead and re-renders
// immediately without advancing time, so the displayed frame matches the
// new position. Play state is untouched.
func (b *Bridge) Seek(ctx context.Context, t float64) {
	b.state.Playhead = clamp(t, 0, b.maxTime())
	b.renderCurrent(ctx)
}

// Play starts playback. The pacing timestamp resets so a long-paused gap
// is not counted as elapsed playback time.
func (b *Bridge) Play() {
	b.state.IsPlaying = true
	b.lastUpdate = b.now()
}

// Pause stops playback.
func (b *Bridge) Pause() {
	b.state.IsPlaying = false
}

// CurrentFrame returns the most recently rendered frame, or nil if nothing
// has been rendered yet.
func (b *Bridge) CurrentFrame() *domain.VideoFrame {
	return b.frame
}

// Playhead returns the current position in seconds.
func (b *Bridge) Playhead() float64 {
	return b.state.Playhead
}

// IsPlaying reports the transport state.
func (b *Bridge) IsPlaying() bool {
	return b.state.IsPlaying
}

// SetRate sets the playback rate multiplier. Non-positive rates are
// ignored.
func (b *Bridge) SetRate(rate float64) {
	if rate > 0 {
		b.state.Rate = rate
	}
}

// Rate returns the playback rate multiplier.
func (b *Bridge) Rate() float64 {
	return b.state.Rate
}

// SetVolume clamps volume to [0, 1]. The value is carried for the audio
// path; video rendering ignores it.
func (b *Bridge) SetVolume(v float64) {
	b.state.Volume = clamp(v, 0, 1)
}

// Volume returns the current volume.
func (b *Bridge) Volume() float64 {
	return b.state.Volume
}

// SetLoop enables loop playback over [start, end). Invalid regions are
// ignored.
func (b *Bridge) SetLoop(start, end float64) {
	if end <= start || start < 0 {
		return
	}
	b.state.LoopStart = &start
	b.state.LoopEnd = &end
}

// ClearLoop disables loop playback.
func (b *Bridge) ClearLoop() {
	b.state.LoopStart = nil
	b.state.LoopEnd = nil
}

func (b *Bridge) renderCurrent(ctx context.Context) {
	b.frame = b.renderer.RenderFrame(ctx, b.state.Playhead)
}

// maxTime is the clamp ceiling: at least one second even for an empty
// timeline, matching the editing session's scrub range.
func (b *Bridge) maxTime() float64 {
	var d float64
	b.handle.View(func(tl *timeline.Timeline) {
		d = tl.Duration
	})
	return math.Max(d, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
