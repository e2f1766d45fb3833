// Package render turns a timeline position into a composited output frame,
// caching results by frame number so a paused or scrubbing playhead never
// re-decodes the same frame.
package render

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashvale/cutline/internal/domain"
	"github.com/ashvale/cutline/internal/timeline"
)

const defaultDecodeTimeout = 5 * time.Second

// Renderer resolves the active clips for a timestamp, delegates pixel
// decoding to the external Decoder and caches the composited frame. The
// cache belongs to exactly one Renderer and has no dependency tracking:
// whoever mutates the clip arrangement must call InvalidateCache.
type Renderer struct {
	handle        *timeline.Handle
	decoder       domain.Decoder
	width         int
	height        int
	frameRate     float64
	decodeTimeout time.Duration
	log           zerolog.Logger

	mu     sync.Mutex
	frames map[int64]*domain.VideoFrame
	audio  map[int64]*domain.AudioBuffer // reserved for audio compositing
}

// New builds a renderer over a shared timeline handle.
func New(handle *timeline.Handle, decoder domain.Decoder, width, height int, frameRate float64, decodeTimeout time.Duration, log zerolog.Logger) *Renderer {
	if decodeTimeout <= 0 {
		decodeTimeout = defaultDecodeTimeout
	}
	return &Renderer{
		handle:        handle,
		decoder:       decoder,
		width:         width,
		height:        height,
		frameRate:     frameRate,
		decodeTimeout: decodeTimeout,
		log:           log,
		frames:        make(map[int64]*domain.VideoFrame),
		audio:         make(map[int64]*domain.AudioBuffer),
	}
}

// FrameNumber maps a timestamp to its cache key, floor(t * frame_rate).
func (r *Renderer) FrameNumber(t float64) int64 {
	return int64(math.Floor(t * r.frameRate))
}

// RenderFrame returns the frame at time t, from cache when possible. On a
// miss it reads the timeline, picks the first active video clip (lowest
// track index wins; higher tracks do not composite over lower ones yet)
// and asks the decoder for the clip-local timestamp. Decode errors, size
// mismatches and timeouts all degrade to a zero-filled RGBA buffer; a
// render never fails. Callers get a clone, so bytes for a given frame
// number are stable until the next InvalidateCache.
func (r *Renderer) RenderFrame(ctx context.Context, t float64) *domain.VideoFrame {
	n := r.FrameNumber(t)

	r.mu.Lock()
	if f, ok := r.frames[n]; ok {
		r.mu.Unlock()
		return f.Clone()
	}
	r.mu.Unlock()

	var clips []timeline.ActiveClip
	r.handle.View(func(tl *timeline.Timeline) {
		clips = tl.ActiveClipsAt(t)
	})

	data := make([]byte, r.width*r.height*4)
	for _, ac := range clips {
		if ac.Kind != domain.StreamVideo {
			continue
		}
		clip := ac.Video
		localTime := t - clip.StartTime + clip.InPoint
		buf, err := r.decode(ctx, clip.AssetPath, localTime)
		switch {
		case err != nil:
			r.log.Warn().Err(err).
				Str("asset", clip.AssetPath).
				Float64("local_time", localTime).
				Msg("frame decode failed, substituting blank frame")
		case len(buf) != len(data):
			r.log.Warn().
				Str("asset", clip.AssetPath).
				Int("got", len(buf)).
				Int("want", len(data)).
				Msg("decoded frame size mismatch, substituting blank frame")
		default:
			copy(data, buf)
		}
		break
	}

	frame := &domain.VideoFrame{
		Data:        data,
		Width:       r.width,
		Height:      r.height,
		Timestamp:   t,
		FrameNumber: n,
	}

	r.mu.Lock()
	r.frames[n] = frame
	r.mu.Unlock()

	return frame.Clone()
}

// decode bounds a decoder call with the configured timeout. The decoder
// runs in its own goroutine so a stuck decode cannot block the render
// loop; a late result is dropped via the buffered channel.
func (r *Renderer) decode(ctx context.Context, assetPath string, localTime float64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.decodeTimeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := r.decoder.DecodeFrame(ctx, assetPath, localTime, r.width, r.height)
		ch <- result{data, err}
	}()

	select {
	case res := <-ch:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// InvalidateCache drops every cached frame. Must be called after any
// timeline mutation that could change what ActiveClipsAt returns for any
// time; until then cached frames for a given frame number stay
// byte-identical.
func (r *Renderer) InvalidateCache() {
	r.mu.Lock()
	r.frames = make(map[int64]*domain.VideoFrame)
	r.audio = make(map[int64]*domain.AudioBuffer)
	r.mu.Unlock()
}

func (r *Renderer) cacheSize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}
