package timeline

import (
	"github.com/google/uuid"

	"github.com/ashvale/cutline/internal/domain"
)

// VideoTrack is an ordered lane of video clips. The model does not sort
// clips or forbid overlap; queries tolerate both.
type VideoTrack struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Clips []VideoClip `json:"clips"`
	Muted bool        `json:"muted"`
}

// AudioTrack is an ordered lane of audio clips.
type AudioTrack struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Clips []AudioClip `json:"clips"`
	Muted bool        `json:"muted"`
}

// Track is a closed variant: exactly one of Video or Audio is set,
// matching Kind. A track holds clips of a single kind; dispatch sites
// switch on Kind explicitly.
type Track struct {
	Kind  domain.StreamType `json:"kind"`
	Video *VideoTrack       `json:"video,omitempty"`
	Audio *AudioTrack       `json:"audio,omitempty"`
}

// NewVideoTrack builds an empty video track. An id is generated when none
// is supplied.
func NewVideoTrack(id, name string) Track {
	if id == "" {
		id = uuid.New().String()
	}
	return Track{
		Kind:  domain.StreamVideo,
		Video: &VideoTrack{ID: id, Name: name},
	}
}

// NewAudioTrack builds an empty audio track.
func NewAudioTrack(id, name string) Track {
	if id == "" {
		id = uuid.New().String()
	}
	return Track{
		Kind:  domain.StreamAudio,
		Audio: &AudioTrack{ID: id, Name: name},
	}
}

// ID returns the id of whichever variant is set.
func (t Track) ID() string {
	switch t.Kind {
	case domain.StreamVideo:
		return t.Video.ID
	case domain.StreamAudio:
		return t.Audio.ID
	}
	return ""
}

// Name returns the display name of whichever variant is set.
func (t Track) Name() string {
	switch t.Kind {
	case domain.StreamVideo:
		return t.Video.Name
	case domain.StreamAudio:
		return t.Audio.Name
	}
	return ""
}

// Muted reports whether the track is muted.
func (t Track) Muted() bool {
	switch t.Kind {
	case domain.StreamVideo:
		return t.Video.Muted
	case domain.StreamAudio:
		return t.Audio.Muted
	}
	return false
}

func (t Track) clone() Track {
	out := Track{Kind: t.Kind}
	switch t.Kind {
	case domain.StreamVideo:
		v := *t.Video
		v.Clips = append([]VideoClip(nil), t.Video.Clips...)
		out.Video = &v
	case domain.StreamAudio:
		a := *t.Audio
		a.Clips = append([]AudioClip(nil), t.Audio.Clips...)
		out.Audio = &a
	}
	return out
}

// ActiveClip is a read-only snapshot of a clip returned by timeline
// queries. It is a copy, not a reference into the timeline, so callers may
// hold it across subsequent mutations. Exactly one of Video or Audio is
// set, matching Kind.
type ActiveClip struct {
	Kind  domain.StreamType `json:"kind"`
	Video *VideoClip        `json:"video,omitempty"`
	Audio *AudioClip        `json:"audio,omitempty"`
}

func activeVideo(c VideoClip) ActiveClip {
	return ActiveClip{Kind: domain.StreamVideo, Video: &c}
}

func activeAudio(c AudioClip) ActiveClip {
	return ActiveClip{Kind: domain.StreamAudio, Audio: &c}
}

// Span returns the placement of whichever variant is set.
func (c ActiveClip) Span() Span {
	switch c.Kind {
	case domain.StreamVideo:
		return c.Video.Span
	case domain.StreamAudio:
		return c.Audio.Span
	}
	return Span{}
}
