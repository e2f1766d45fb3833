// Package cutline implements the core of a non-linear video/audio editing
// timeline: tracks of time-positioned clips, time-based queries and split
// edits, and a playback pipeline that composites and caches rendered
// frames as the playhead advances.
//
// # Architecture
//
// The library is built around one interface the host must implement:
//
//   - Decoder: given an asset path and a timestamp inside that asset,
//     returns decoded RGBA pixel data. Codec work lives entirely behind
//     this boundary; the core only decides which clip and which local
//     timestamp to ask for, and how to cache and compose the result.
//
// A bundled ffmpeg-backed implementation is available in the ffmpegdec
// subpackage.
//
// # Basic Usage
//
//	editor, err := cutline.NewEditor(cutline.Options{
//	    Decoder: ffmpegdec.New(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	trackID := editor.AddVideoTrack("Video 1")
//	clip, _ := cutline.NewVideoClip("v1", "/media/intro.mp4", 0, 10, 0, cutline.VideoMetadata{
//	    Width: 1920, Height: 1080, FrameRate: 30, Codec: "h264",
//	})
//	editor.AddVideoClip(trackID, clip)
//
//	editor.Play()
//	for range repaintTicks {
//	    editor.Update(ctx)
//	    frame := editor.CurrentFrame()
//	    // hand frame.Data to the display surface
//	}
//
// # Concurrency
//
// The timeline sits behind a reader/writer lock: edits take exclusive
// access for a single mutation, render passes take shared access for a
// single query. Playback methods (Update, Seek, Play, Pause,
// CurrentFrame) are meant to be driven by one goroutine, typically the
// host UI's repaint loop. The core spawns no goroutines of its own beyond
// bounding individual decode calls.
//
// # Frame cache
//
// Rendered frames are cached by frame number, floor(t * frame_rate).
// Every mutation entry point on Editor clears the cache after the edit,
// so stale frames are never served across a layout change.
package cutline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashvale/cutline/internal/domain"
	"github.com/ashvale/cutline/internal/playback"
	"github.com/ashvale/cutline/internal/render"
	"github.com/ashvale/cutline/internal/timeline"
)

type (
	// Decoder is the external frame decoder consumed by the renderer.
	// Implementations must return exactly width*height*4 bytes of RGBA
	// data; any error, size mismatch or timeout is absorbed by the
	// renderer as a blank frame.
	Decoder = domain.Decoder

	// VideoFrame is one composited RGBA output frame.
	VideoFrame = domain.VideoFrame

	// AudioBuffer is the audio counterpart of VideoFrame, reserved for
	// the future audio path.
	AudioBuffer = domain.AudioBuffer

	// StreamType identifies the kind of a track or clip (video or audio).
	StreamType = domain.StreamType

	// Timeline is the track/clip arrangement plus frame geometry. Its
	// JSON field set is the persistence contract.
	Timeline = timeline.Timeline

	// Track is a closed video-or-audio variant.
	Track = timeline.Track

	// VideoClip is one placed instance of a video asset on a track.
	VideoClip = timeline.VideoClip

	// AudioClip is one placed instance of an audio asset on a track.
	AudioClip = timeline.AudioClip

	// VideoMetadata carries the format properties of a video asset.
	VideoMetadata = timeline.VideoMetadata

	// AudioMetadata carries the format properties of an audio asset.
	AudioMetadata = timeline.AudioMetadata

	// ActiveClip is a read-only clip snapshot returned by queries; it
	// stays valid across subsequent timeline mutations.
	ActiveClip = timeline.ActiveClip
)

const (
	// StreamVideo identifies video tracks and clips.
	StreamVideo = domain.StreamVideo

	// StreamAudio identifies audio tracks and clips.
	StreamAudio = domain.StreamAudio
)

// ErrMalformedClip is returned by the clip constructors when a source
// range or placement violates the model invariants.
var ErrMalformedClip = timeline.ErrMalformedClip

// NewVideoClip validates and builds a video clip.
func NewVideoClip(id, assetPath string, inPoint, outPoint, startTime float64, md VideoMetadata) (VideoClip, error) {
	return timeline.NewVideoClip(id, assetPath, inPoint, outPoint, startTime, md)
}

// NewAudioClip validates and builds an audio clip.
func NewAudioClip(id, assetPath string, inPoint, outPoint, startTime float64, md AudioMetadata) (AudioClip, error) {
	return timeline.NewAudioClip(id, assetPath, inPoint, outPoint, startTime, md)
}

// Options configures an Editor.
type Options struct {
	// Decoder is required. It is the only codec-aware component.
	Decoder Decoder

	// Width and Height set the render output resolution.
	// Default: 1920x1080.
	Width  int
	Height int

	// FrameRate sets the timeline frame rate used for frame numbering.
	// Default: 30.
	FrameRate float64

	// DecodeTimeout bounds a single decoder call. On timeout the
	// renderer substitutes a blank frame. Default: 5 seconds.
	DecodeTimeout time.Duration

	// Logger receives decode failures and mutation traces. Nil disables
	// logging.
	Logger *zerolog.Logger
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = 1920
	}
	if o.Height == 0 {
		o.Height = 1080
	}
	if o.FrameRate == 0 {
		o.FrameRate = 30.0
	}
	if o.DecodeTimeout == 0 {
		o.DecodeTimeout = 5 * time.Second
	}
}

// Editor is the facade over one editing session: it owns the shared
// timeline handle, the renderer and its frame cache, and the playback
// bridge. Mutation entry points take the timeline write lock and clear
// the frame cache; queries take the read lock and return snapshots.
type Editor struct {
	handle   *timeline.Handle
	renderer *render.Renderer
	bridge   *playback.Bridge
	log      zerolog.Logger
}

// NewEditor builds an editing session over an empty timeline.
func NewEditor(opts Options) (*Editor, error) {
	if opts.Decoder == nil {
		return nil, fmt.Errorf("cutline: Decoder is required")
	}
	opts.setDefaults()

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	tl := timeline.New()
	tl.FrameRate = opts.FrameRate
	tl.Width = opts.Width
	tl.Height = opts.Height

	handle := timeline.NewHandle(tl)
	renderer := render.New(handle, opts.Decoder, opts.Width, opts.Height, opts.FrameRate, opts.DecodeTimeout, log)
	bridge := playback.NewBridge(handle, renderer, log)

	return &Editor{
		handle:   handle,
		renderer: renderer,
		bridge:   bridge,
		log:      log,
	}, nil
}

// AddVideoTrack appends an empty video track and returns its generated id.
func (e *Editor) AddVideoTrack(name string) string {
	track := timeline.NewVideoTrack("", name)
	e.handle.Update(func(tl *Timeline) {
		tl.AddTrack(track)
	})
	e.renderer.InvalidateCache()
	e.log.Debug().Str("track", track.ID()).Str("name", name).Msg("video track added")
	return track.ID()
}

// AddAudioTrack appends an empty audio track and returns its generated id.
func (e *Editor) AddAudioTrack(name string) string {
	track := timeline.NewAudioTrack("", name)
	e.handle.Update(func(tl *Timeline) {
		tl.AddTrack(track)
	})
	e.renderer.InvalidateCache()
	e.log.Debug().Str("track", track.ID()).Str("name", name).Msg("audio track added")
	return track.ID()
}

// RemoveTrack deletes the named track and reports whether it existed.
func (e *Editor) RemoveTrack(trackID string) bool {
	var removed bool
	e.handle.Update(func(tl *Timeline) {
		removed = tl.RemoveTrack(trackID)
	})
	if removed {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Msg("track removed")
	}
	return removed
}

// AddVideoClip places a clip on the named video track, growing the
// timeline duration to cover the clip end. It reports false when the
// track is missing or not a video track.
func (e *Editor) AddVideoClip(trackID string, clip VideoClip) bool {
	var added bool
	e.handle.Update(func(tl *Timeline) {
		added = tl.AddVideoClip(trackID, clip)
	})
	if added {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Str("clip", clip.ID).Msg("video clip added")
	}
	return added
}

// AddAudioClip places a clip on the named audio track.
func (e *Editor) AddAudioClip(trackID string, clip AudioClip) bool {
	var added bool
	e.handle.Update(func(tl *Timeline) {
		added = tl.AddAudioClip(trackID, clip)
	})
	if added {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Str("clip", clip.ID).Msg("audio clip added")
	}
	return added
}

// SplitAtPlayhead cuts the first clip on the named track whose interval
// strictly contains the playhead into two clips meeting at the playhead.
// It reports whether a split occurred; a playhead outside every clip, or
// exactly on a clip boundary, is not an error.
func (e *Editor) SplitAtPlayhead(trackID string, playhead float64) bool {
	var split bool
	e.handle.Update(func(tl *Timeline) {
		split = tl.SplitClipAtPlayhead(trackID, playhead)
	})
	if split {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Float64("playhead", playhead).Msg("clip split")
	}
	return split
}

// MoveClip repositions a clip without touching its source range.
func (e *Editor) MoveClip(trackID, clipID string, newStart float64) bool {
	var moved bool
	e.handle.Update(func(tl *Timeline) {
		moved = tl.MoveClip(trackID, clipID, newStart)
	})
	if moved {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Str("clip", clipID).Float64("start", newStart).Msg("clip moved")
	}
	return moved
}

// ResizeClip applies a trim gesture's new start/duration pair, keeping the
// clip's source range consistent with its timeline placement.
func (e *Editor) ResizeClip(trackID, clipID string, newStart, newDuration float64) bool {
	var resized bool
	e.handle.Update(func(tl *Timeline) {
		resized = tl.ResizeClip(trackID, clipID, newStart, newDuration)
	})
	if resized {
		e.renderer.InvalidateCache()
		e.log.Debug().Str("track", trackID).Str("clip", clipID).Msg("clip resized")
	}
	return resized
}

// SetDuration overrides the timeline duration used as the playback clamp
// ceiling.
func (e *Editor) SetDuration(d float64) {
	if d < 0 {
		d = 0
	}
	e.handle.Update(func(tl *Timeline) {
		tl.Duration = d
	})
}

// ActiveClipsAt returns a snapshot of every clip whose half-open interval
// contains t, in track order then clip order.
func (e *Editor) ActiveClipsAt(t float64) []ActiveClip {
	var clips []ActiveClip
	e.handle.View(func(tl *Timeline) {
		clips = tl.ActiveClipsAt(t)
	})
	return clips
}

// ClipsInRange returns a snapshot of every clip overlapping [start, end).
func (e *Editor) ClipsInRange(start, end float64) []ActiveClip {
	var clips []ActiveClip
	e.handle.View(func(tl *Timeline) {
		clips = tl.ClipsInRange(start, end)
	})
	return clips
}

// ClipsOnTrack returns a snapshot of every clip on the named track, or
// ok=false when no such track exists.
func (e *Editor) ClipsOnTrack(trackID string) ([]ActiveClip, bool) {
	var (
		clips []ActiveClip
		ok    bool
	)
	e.handle.View(func(tl *Timeline) {
		clips, ok = tl.ClipsOnTrack(trackID)
	})
	return clips, ok
}

// Snapshot returns a deep copy of the timeline for the persistence layer.
func (e *Editor) Snapshot() *Timeline {
	return e.handle.Snapshot()
}

// Restore replaces the timeline with one loaded by the persistence layer
// and clears the frame cache.
func (e *Editor) Restore(tl *Timeline) {
	e.handle.Replace(tl)
	e.renderer.InvalidateCache()
}

// RenderFrame renders the frame at an arbitrary time, bypassing the
// playhead. Useful for scrub previews and thumbnails.
func (e *Editor) RenderFrame(ctx context.Context, t float64) *VideoFrame {
	return e.renderer.RenderFrame(ctx, t)
}

// Update advances playback against wall-clock time and re-renders the
// current frame. Call it on the host's repaint tick.
func (e *Editor) Update(ctx context.Context) {
	e.bridge.Update(ctx)
}

// Seek moves the playhead, clamped to the timeline bounds, and re-renders
// immediately without advancing time.
func (e *Editor) Seek(ctx context.Context, t float64) {
	e.bridge.Seek(ctx, t)
}

// Play starts playback.
func (e *Editor) Play() {
	e.bridge.Play()
}

// Pause stops playback.
func (e *Editor) Pause() {
	e.bridge.Pause()
}

// CurrentFrame returns the most recently rendered frame, or nil if
// nothing has been rendered yet.
func (e *Editor) CurrentFrame() *VideoFrame {
	return e.bridge.CurrentFrame()
}

// Playhead returns the current playback position in seconds.
func (e *Editor) Playhead() float64 {
	return e.bridge.Playhead()
}

// IsPlaying reports the transport state.
func (e *Editor) IsPlaying() bool {
	return e.bridge.IsPlaying()
}

// SetRate sets the playback rate multiplier; non-positive values are
// ignored.
func (e *Editor) SetRate(rate float64) {
	e.bridge.SetRate(rate)
}

// SetVolume sets the playback volume, clamped to [0, 1].
func (e *Editor) SetVolume(v float64) {
	e.bridge.SetVolume(v)
}

// SetLoop enables loop playback over [start, end); invalid regions are
// ignored.
func (e *Editor) SetLoop(start, end float64) {
	e.bridge.SetLoop(start, end)
}

// ClearLoop disables loop playback.
func (e *Editor) ClearLoop() {
	e.bridge.ClearLoop()
}
