package timeline

import (
	"errors"
	"fmt"
)

// ErrMalformedClip is returned by clip constructors when the source range
// or placement would violate the model invariants. A malformed clip never
// enters a timeline.
var ErrMalformedClip = errors.New("malformed clip")

// Span is the placement shared by every clip kind: where the clip sits on
// the timeline (StartTime, Duration) and which slice of the source asset
// it consumes (InPoint, OutPoint). After a split, Duration always equals
// OutPoint - InPoint.
type Span struct {
	ID        string  `json:"id"`
	AssetPath string  `json:"asset_path"`
	InPoint   float64 `json:"in_point"`
	OutPoint  float64 `json:"out_point"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
}

// End returns the clip's end position on the timeline.
func (s Span) End() float64 {
	return s.StartTime + s.Duration
}

// ActiveAt reports whether the half-open interval [StartTime, End)
// contains t.
func (s Span) ActiveAt(t float64) bool {
	return t >= s.StartTime && t < s.End()
}

// Overlaps reports whether the clip's interval overlaps [start, end).
func (s Span) Overlaps(start, end float64) bool {
	return s.End() > start && s.StartTime < end
}

func (s Span) validate() error {
	if s.OutPoint <= s.InPoint {
		return fmt.Errorf("%w: out_point %g <= in_point %g", ErrMalformedClip, s.OutPoint, s.InPoint)
	}
	if s.StartTime < 0 {
		return fmt.Errorf("%w: negative start_time %g", ErrMalformedClip, s.StartTime)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: non-positive duration %g", ErrMalformedClip, s.Duration)
	}
	return nil
}

// VideoMetadata carries the format properties of a video asset.
type VideoMetadata struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FrameRate float64 `json:"frame_rate"`
	Codec     string  `json:"codec"`
}

// AudioMetadata carries the format properties of an audio asset.
type AudioMetadata struct {
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	Codec      string `json:"codec"`
	Bitrate    int    `json:"bitrate"`
}

// VideoClip is one placed instance of a video asset on a track.
type VideoClip struct {
	Span
	Metadata VideoMetadata `json:"metadata"`
}

// AudioClip is one placed instance of an audio asset on a track.
type AudioClip struct {
	Span
	Metadata AudioMetadata `json:"metadata"`
}

// NewVideoClip validates and builds a video clip. Duration is derived from
// the source range.
func NewVideoClip(id, assetPath string, inPoint, outPoint, startTime float64, md VideoMetadata) (VideoClip, error) {
	span := Span{
		ID:        id,
		AssetPath: assetPath,
		InPoint:   inPoint,
		OutPoint:  outPoint,
		StartTime: startTime,
		Duration:  outPoint - inPoint,
	}
	if err := span.validate(); err != nil {
		return VideoClip{}, err
	}
	return VideoClip{Span: span, Metadata: md}, nil
}

// NewAudioClip validates and builds an audio clip.
func NewAudioClip(id, assetPath string, inPoint, outPoint, startTime float64, md AudioMetadata) (AudioClip, error) {
	span := Span{
		ID:        id,
		AssetPath: assetPath,
		InPoint:   inPoint,
		OutPoint:  outPoint,
		StartTime: startTime,
		Duration:  outPoint - inPoint,
	}
	if err := span.validate(); err != nil {
		return AudioClip{}, err
	}
	return AudioClip{Span: span, Metadata: md}, nil
}
