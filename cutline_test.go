package cutline

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
)

type stubDecoder struct {
	mu    sync.Mutex
	calls int
	fill  byte
}

func (d *stubDecoder) DecodeFrame(ctx context.Context, assetPath string, localTime float64, width, height int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	out := make([]byte, width*height*4)
	for i := range out {
		out[i] = d.fill
	}
	return out, nil
}

func (d *stubDecoder) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func newTestEditor(t *testing.T) (*Editor, *stubDecoder) {
	t.Helper()
	dec := &stubDecoder{fill: 0x7F}
	editor, err := NewEditor(Options{Decoder: dec, Width: 8, Height: 4})
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return editor, dec
}

func addClip(t *testing.T, editor *Editor, trackID, clipID string, inPoint, outPoint, startTime float64) {
	t.Helper()
	clip, err := NewVideoClip(clipID, clipID+".mp4", inPoint, outPoint, startTime, VideoMetadata{
		Width: 1920, Height: 1080, FrameRate: 30, Codec: "h264",
	})
	if err != nil {
		t.Fatalf("NewVideoClip: %v", err)
	}
	if !editor.AddVideoClip(trackID, clip) {
		t.Fatalf("AddVideoClip failed for track %q", trackID)
	}
}

func TestNewEditorRequiresDecoder(t *testing.T) {
	if _, err := NewEditor(Options{}); err == nil {
		t.Fatalf("expected an error without a decoder")
	}
}

func TestEditSessionEndToEnd(t *testing.T) {
	editor, dec := newTestEditor(t)
	ctx := context.Background()

	trackID := editor.AddVideoTrack("Video 1")
	if trackID == "" {
		t.Fatalf("expected a generated track id")
	}
	addClip(t, editor, trackID, "v1", 0, 10, 0)

	// Render twice: one decode, identical bytes.
	a := editor.RenderFrame(ctx, 4.5)
	b := editor.RenderFrame(ctx, 4.5)
	if dec.callCount() != 1 {
		t.Fatalf("expected a single decode, got %d", dec.callCount())
	}
	if a.Data[0] != 0x7F || b.Data[0] != 0x7F {
		t.Fatalf("expected decoded pixels")
	}

	// A split invalidates the cache; the same frame is decoded again.
	if !editor.SplitAtPlayhead(trackID, 4.0) {
		t.Fatalf("expected split to occur")
	}
	editor.RenderFrame(ctx, 4.5)
	if dec.callCount() != 2 {
		t.Fatalf("stale cache served after a split, %d decodes", dec.callCount())
	}

	clips, ok := editor.ClipsOnTrack(trackID)
	if !ok || len(clips) != 2 {
		t.Fatalf("expected 2 clips after split, got %d (ok=%v)", len(clips), ok)
	}
	if clips[0].Video.ID != "v1_left" || clips[1].Video.ID != "v1_right" {
		t.Fatalf("unexpected clip ids: %q, %q", clips[0].Video.ID, clips[1].Video.ID)
	}
}

func TestSplitAtPlayheadReportsNoSplit(t *testing.T) {
	editor, _ := newTestEditor(t)
	trackID := editor.AddVideoTrack("Video 1")
	addClip(t, editor, trackID, "v1", 0, 10, 0)

	if editor.SplitAtPlayhead(trackID, 0.0) {
		t.Fatalf("split at clip start must report no split")
	}
	if editor.SplitAtPlayhead(trackID, 10.0) {
		t.Fatalf("split at clip end must report no split")
	}
	if editor.SplitAtPlayhead("missing", 4.0) {
		t.Fatalf("split on unknown track must report no split")
	}
}

func TestQueriesAcrossTracks(t *testing.T) {
	editor, _ := newTestEditor(t)
	vt := editor.AddVideoTrack("Video 1")
	at := editor.AddAudioTrack("Audio 1")
	addClip(t, editor, vt, "v1", 0, 10, 0)

	ac, err := NewAudioClip("a1", "audio.wav", 0, 8, 2, AudioMetadata{SampleRate: 48000, Channels: 2, Codec: "pcm", Bitrate: 1536})
	if err != nil {
		t.Fatalf("NewAudioClip: %v", err)
	}
	if !editor.AddAudioClip(at, ac) {
		t.Fatalf("AddAudioClip failed")
	}

	active := editor.ActiveClipsAt(5.0)
	if len(active) != 2 {
		t.Fatalf("expected 2 active clips, got %d", len(active))
	}
	if active[0].Kind != StreamVideo || active[1].Kind != StreamAudio {
		t.Fatalf("expected track order, got %v then %v", active[0].Kind, active[1].Kind)
	}

	if got := editor.ClipsInRange(9.5, 20); len(got) != 2 {
		t.Fatalf("expected 2 clips in range, got %d", len(got))
	}
	if got := editor.ClipsInRange(10.5, 20); len(got) != 0 {
		t.Fatalf("expected no clips in range, got %d", len(got))
	}
}

func TestMoveAndResizeInvalidateCache(t *testing.T) {
	editor, dec := newTestEditor(t)
	ctx := context.Background()
	trackID := editor.AddVideoTrack("Video 1")
	addClip(t, editor, trackID, "v1", 0, 10, 0)

	editor.RenderFrame(ctx, 1.0)
	if !editor.MoveClip(trackID, "v1", 2.0) {
		t.Fatalf("expected move to succeed")
	}
	editor.RenderFrame(ctx, 1.0)
	if dec.callCount() != 1 {
		// After the move nothing is active at t=1, so no decode happens,
		// but the blank result must come from a fresh render.
		t.Fatalf("unexpected decode count %d", dec.callCount())
	}

	if !editor.ResizeClip(trackID, "v1", 2.0, 6.0) {
		t.Fatalf("expected resize to succeed")
	}
	clips, _ := editor.ClipsOnTrack(trackID)
	if clips[0].Video.Duration != 6.0 || clips[0].Video.OutPoint != 6.0 {
		t.Fatalf("unexpected clip after resize: %+v", clips[0].Video.Span)
	}
}

func TestSnapshotAndRestore(t *testing.T) {
	editor, _ := newTestEditor(t)
	trackID := editor.AddVideoTrack("Video 1")
	addClip(t, editor, trackID, "v1", 0, 10, 0)

	snap := editor.Snapshot()

	// Snapshot is detached from later edits.
	if !editor.SplitAtPlayhead(trackID, 4.0) {
		t.Fatalf("expected split to occur")
	}
	if len(snap.Tracks[0].Video.Clips) != 1 {
		t.Fatalf("snapshot mutated by a later edit")
	}

	// The snapshot round-trips through JSON and restores cleanly.
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var loaded Timeline
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	editor.Restore(&loaded)

	clips, ok := editor.ClipsOnTrack(trackID)
	if !ok || len(clips) != 1 || clips[0].Video.ID != "v1" {
		t.Fatalf("restore did not bring back the saved arrangement")
	}
}

func TestRemoveTrack(t *testing.T) {
	editor, _ := newTestEditor(t)
	trackID := editor.AddVideoTrack("Video 1")

	if !editor.RemoveTrack(trackID) {
		t.Fatalf("expected removal to succeed")
	}
	if editor.RemoveTrack(trackID) {
		t.Fatalf("second removal must report false")
	}
	if _, ok := editor.ClipsOnTrack(trackID); ok {
		t.Fatalf("removed track must be absent")
	}
}

func TestPlaybackThroughFacade(t *testing.T) {
	editor, _ := newTestEditor(t)
	ctx := context.Background()
	trackID := editor.AddVideoTrack("Video 1")
	addClip(t, editor, trackID, "v1", 0, 10, 0)

	if editor.CurrentFrame() != nil {
		t.Fatalf("expected no frame before any render")
	}

	editor.Seek(ctx, -5.0)
	if editor.Playhead() != 0 {
		t.Fatalf("seek(-5) must clamp to 0, got %g", editor.Playhead())
	}
	if editor.IsPlaying() {
		t.Fatalf("seek must not start playback")
	}
	if editor.CurrentFrame() == nil {
		t.Fatalf("seek must render the frame at the new position")
	}

	editor.Play()
	if !editor.IsPlaying() {
		t.Fatalf("expected playing transport")
	}
	editor.Update(ctx)
	editor.Pause()
	if editor.IsPlaying() {
		t.Fatalf("expected paused transport")
	}
}
