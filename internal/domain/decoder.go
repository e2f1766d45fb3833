package domain

import "context"

// Decoder produces decoded pixel data for a media asset. localTime is the
// timestamp inside the source file, not on the timeline. A successful call
// returns exactly width*height*4 bytes of RGBA data; anything else is
// treated as a decode failure by the renderer.
//
// Implementations may block for the duration of a decode; the renderer
// bounds each call with a timeout and must never be left waiting forever.
type Decoder interface {
	DecodeFrame(ctx context.Context, assetPath string, localTime float64, width, height int) ([]byte, error)
}
