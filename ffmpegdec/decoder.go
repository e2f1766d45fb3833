// Package ffmpegdec provides an ffmpeg-backed implementation of the
// cutline Decoder interface. It shells out to the ffmpeg binary for each
// request, seeking to the asset-local timestamp and pulling a single
// scaled RGBA frame over a pipe. The renderer caches aggressively, so one
// process per decoded frame keeps the implementation simple without
// hurting scrub or playback latency.
package ffmpegdec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Decoder decodes single frames with ffmpeg.
type Decoder struct{}

// New returns an ffmpeg-backed decoder. The ffmpeg binary must be on PATH.
func New() *Decoder {
	return &Decoder{}
}

// DecodeFrame extracts the frame at localTime from assetPath, scaled to
// width x height, as packed RGBA. The returned buffer is exactly
// width*height*4 bytes or an error. Cancellation is checked up front;
// the caller is expected to bound the call's wall time.
func (d *Decoder) DecodeFrame(ctx context.Context, assetPath string, localTime float64, width, height int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if localTime < 0 {
		return nil, fmt.Errorf("negative local time %g", localTime)
	}
	if _, err := os.Stat(assetPath); err != nil {
		return nil, fmt.Errorf("asset not readable: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	err := ffmpeg.Input(assetPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.6f", localTime)}).
		Output("pipe:", ffmpeg.KwArgs{
			"vframes": 1,
			"format":  "rawvideo",
			"pix_fmt": "rgba",
			"s":       fmt.Sprintf("%dx%d", width, height),
		}).
		WithOutput(buf, io.Discard).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode: %w", err)
	}

	want := width * height * 4
	if buf.Len() != want {
		return nil, fmt.Errorf("decoded frame size mismatch: got %d, want %d", buf.Len(), want)
	}
	return buf.Bytes(), nil
}
