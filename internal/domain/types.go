package domain

type StreamType string

const (
	StreamVideo StreamType = "video"
	StreamAudio StreamType = "audio"
)
