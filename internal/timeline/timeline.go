package timeline

import (
	"github.com/ashvale/cutline/internal/domain"
)

// Timeline owns the track/clip arrangement plus the global frame geometry.
// It is plain data with no locking of its own; shared access goes through
// a Handle. The JSON field set is the persistence contract consumed by the
// project layer.
type Timeline struct {
	Tracks    []Track `json:"tracks"`
	Duration  float64 `json:"duration"`
	FrameRate float64 `json:"frame_rate"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// New returns an empty timeline with the session defaults: no tracks,
// duration 0, 30 fps, 1920x1080.
func New() *Timeline {
	return &Timeline{
		FrameRate: 30,
		Width:     1920,
		Height:    1080,
	}
}

// Clone returns a deep copy, used for persistence snapshots.
func (tl *Timeline) Clone() *Timeline {
	out := *tl
	out.Tracks = make([]Track, len(tl.Tracks))
	for i, t := range tl.Tracks {
		out.Tracks[i] = t.clone()
	}
	return &out
}

// AddTrack appends a track.
func (tl *Timeline) AddTrack(t Track) {
	tl.Tracks = append(tl.Tracks, t)
}

// RemoveTrack removes the track with the given id and reports whether it
// existed.
func (tl *Timeline) RemoveTrack(trackID string) bool {
	for i, t := range tl.Tracks {
		if t.ID() == trackID {
			tl.Tracks = append(tl.Tracks[:i], tl.Tracks[i+1:]...)
			return true
		}
	}
	return false
}

func (tl *Timeline) findTrack(trackID string) *Track {
	for i := range tl.Tracks {
		if tl.Tracks[i].ID() == trackID {
			return &tl.Tracks[i]
		}
	}
	return nil
}

// AddVideoClip places a clip on the named video track, growing the
// timeline duration to cover the clip end. It reports false when the
// track is missing or of the wrong kind.
func (tl *Timeline) AddVideoClip(trackID string, c VideoClip) bool {
	t := tl.findTrack(trackID)
	if t == nil || t.Kind != domain.StreamVideo {
		return false
	}
	t.Video.Clips = append(t.Video.Clips, c)
	if end := c.End(); end > tl.Duration {
		tl.Duration = end
	}
	return true
}

// AddAudioClip places a clip on the named audio track.
func (tl *Timeline) AddAudioClip(trackID string, c AudioClip) bool {
	t := tl.findTrack(trackID)
	if t == nil || t.Kind != domain.StreamAudio {
		return false
	}
	t.Audio.Clips = append(t.Audio.Clips, c)
	if end := c.End(); end > tl.Duration {
		tl.Duration = end
	}
	return true
}

// ActiveClipsAt returns a snapshot of every clip, video and audio, whose
// half-open interval [start_time, start_time+duration) contains t.
// Order is track order then clip order; no sorting by time.
func (tl *Timeline) ActiveClipsAt(t float64) []ActiveClip {
	var result []ActiveClip
	for _, track := range tl.Tracks {
		switch track.Kind {
		case domain.StreamVideo:
			for _, c := range track.Video.Clips {
				if c.ActiveAt(t) {
					result = append(result, activeVideo(c))
				}
			}
		case domain.StreamAudio:
			for _, c := range track.Audio.Clips {
				if c.ActiveAt(t) {
					result = append(result, activeAudio(c))
				}
			}
		}
	}
	return result
}

// ClipsInRange returns a snapshot of every clip whose interval overlaps
// [start, end), using the test clip_end > start && clip_start < end.
// A zero- or negative-width range matches nothing.
func (tl *Timeline) ClipsInRange(start, end float64) []ActiveClip {
	if end <= start {
		return nil
	}
	var result []ActiveClip
	for _, track := range tl.Tracks {
		switch track.Kind {
		case domain.StreamVideo:
			for _, c := range track.Video.Clips {
				if c.Overlaps(start, end) {
					result = append(result, activeVideo(c))
				}
			}
		case domain.StreamAudio:
			for _, c := range track.Audio.Clips {
				if c.Overlaps(start, end) {
					result = append(result, activeAudio(c))
				}
			}
		}
	}
	return result
}

// ClipsOnTrack returns a snapshot of every clip on the named track, or
// ok=false when no such track exists.
func (tl *Timeline) ClipsOnTrack(trackID string) ([]ActiveClip, bool) {
	t := tl.findTrack(trackID)
	if t == nil {
		return nil, false
	}
	var result []ActiveClip
	switch t.Kind {
	case domain.StreamVideo:
		for _, c := range t.Video.Clips {
			result = append(result, activeVideo(c))
		}
	case domain.StreamAudio:
		for _, c := range t.Audio.Clips {
			result = append(result, activeAudio(c))
		}
	}
	return result, true
}

// SplitClipAtPlayhead splits the first clip on the named track whose open
// interval strictly contains the playhead, replacing it in place with the
// two halves. It reports whether a split occurred. Only the first matching
// clip is split per call, even when overlapping clips also contain the
// playhead.
func (tl *Timeline) SplitClipAtPlayhead(trackID string, playhead float64) bool {
	t := tl.findTrack(trackID)
	if t == nil {
		return false
	}
	switch t.Kind {
	case domain.StreamVideo:
		clips := t.Video.Clips
		for i, c := range clips {
			left, right, ok := SplitVideoClip(c, playhead)
			if !ok {
				continue
			}
			clips = append(clips[:i], append([]VideoClip{left, right}, clips[i+1:]...)...)
			t.Video.Clips = clips
			return true
		}
	case domain.StreamAudio:
		clips := t.Audio.Clips
		for i, c := range clips {
			left, right, ok := SplitAudioClip(c, playhead)
			if !ok {
				continue
			}
			clips = append(clips[:i], append([]AudioClip{left, right}, clips[i+1:]...)...)
			t.Audio.Clips = clips
			return true
		}
	}
	return false
}

// MoveClip repositions a clip on the timeline without touching its source
// range. Negative targets clamp to zero. It reports false when the track
// or clip is missing.
func (tl *Timeline) MoveClip(trackID, clipID string, newStart float64) bool {
	if newStart < 0 {
		newStart = 0
	}
	span := tl.findSpan(trackID, clipID)
	if span == nil {
		return false
	}
	span.StartTime = newStart
	if end := span.End(); end > tl.Duration {
		tl.Duration = end
	}
	return true
}

// ResizeClip applies the new placement a trim gesture produced. The left
// edge delta shifts the in-point and the out-point is recomputed so
// duration == out_point - in_point still holds. Resizes that would push
// the in-point negative or make the duration non-positive are rejected.
func (tl *Timeline) ResizeClip(trackID, clipID string, newStart, newDuration float64) bool {
	if newStart < 0 || newDuration <= 0 {
		return false
	}
	span := tl.findSpan(trackID, clipID)
	if span == nil {
		return false
	}
	newIn := span.InPoint + (newStart - span.StartTime)
	if newIn < 0 {
		return false
	}
	span.InPoint = newIn
	span.OutPoint = newIn + newDuration
	span.StartTime = newStart
	span.Duration = newDuration
	if end := span.End(); end > tl.Duration {
		tl.Duration = end
	}
	return true
}

func (tl *Timeline) findSpan(trackID, clipID string) *Span {
	t := tl.findTrack(trackID)
	if t == nil {
		return nil
	}
	switch t.Kind {
	case domain.StreamVideo:
		for i := range t.Video.Clips {
			if t.Video.Clips[i].ID == clipID {
				return &t.Video.Clips[i].Span
			}
		}
	case domain.StreamAudio:
		for i := range t.Audio.Clips {
			if t.Audio.Clips[i].ID == clipID {
				return &t.Audio.Clips[i].Span
			}
		}
	}
	return nil
}
