package domain

// VideoFrame is one composited output frame. Data is packed RGBA, 4 bytes
// per pixel, length Width*Height*4. FrameNumber is floor(Timestamp * fps)
// for the timeline's frame rate and keys the renderer's cache.
type VideoFrame struct {
	Data        []byte
	Width       int
	Height      int
	Timestamp   float64
	FrameNumber int64
}

// Clone returns a deep copy so callers can hold a frame across cache
// invalidation without aliasing cached bytes.
func (f *VideoFrame) Clone() *VideoFrame {
	clone := *f
	clone.Data = make([]byte, len(f.Data))
	copy(clone.Data, f.Data)
	return &clone
}

// AudioBuffer is the audio counterpart of VideoFrame. Audio compositing is
// not implemented yet; the type exists so the renderer's future audio cache
// can share the frame-number key scheme.
type AudioBuffer struct {
	Data        []float32
	SampleRate  int
	Timestamp   float64
	FrameNumber int64
}
