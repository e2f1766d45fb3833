package ffmpegdec

import (
	"context"
	"testing"
)

func TestDecodeFrameRejectsInvalidSize(t *testing.T) {
	d := New()
	if _, err := d.DecodeFrame(context.Background(), "missing.mp4", 0, 0, 1080); err == nil {
		t.Fatalf("expected an error for zero width")
	}
	if _, err := d.DecodeFrame(context.Background(), "missing.mp4", 0, 1920, -1); err == nil {
		t.Fatalf("expected an error for negative height")
	}
}

func TestDecodeFrameRejectsNegativeLocalTime(t *testing.T) {
	d := New()
	if _, err := d.DecodeFrame(context.Background(), "missing.mp4", -0.5, 16, 16); err == nil {
		t.Fatalf("expected an error for negative local time")
	}
}

func TestDecodeFrameRejectsMissingAsset(t *testing.T) {
	d := New()
	if _, err := d.DecodeFrame(context.Background(), "/nonexistent/clip.mp4", 1.0, 16, 16); err == nil {
		t.Fatalf("expected an error for a missing asset")
	}
}

func TestDecodeFrameHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New()
	if _, err := d.DecodeFrame(ctx, "/nonexistent/clip.mp4", 1.0, 16, 16); err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}
