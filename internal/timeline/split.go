package timeline

// splitSpan cuts a placement in two at the playhead. The playhead must lie
// strictly inside the clip's interval; a cut exactly at either boundary
// produces no meaningful halves and is rejected. The halves partition both
// the timeline interval and the source range: left keeps the original
// in-point, right keeps the original out-point, and they meet at
// in_point + (playhead - start_time).
func splitSpan(s Span, playhead float64) (left, right Span, ok bool) {
	start := s.StartTime
	end := s.End()
	if playhead <= start || playhead >= end {
		return Span{}, Span{}, false
	}

	offset := playhead - start

	left = s
	left.ID = s.ID + "_left"
	left.OutPoint = s.InPoint + offset
	left.Duration = offset

	right = s
	right.ID = s.ID + "_right"
	right.InPoint = s.InPoint + offset
	right.StartTime = playhead
	right.Duration = end - playhead

	return left, right, true
}

// SplitVideoClip cuts a video clip at the playhead. Metadata is copied
// unchanged into both halves. ok is false when the playhead is outside
// the clip's open interval.
func SplitVideoClip(c VideoClip, playhead float64) (left, right VideoClip, ok bool) {
	ls, rs, ok := splitSpan(c.Span, playhead)
	if !ok {
		return VideoClip{}, VideoClip{}, false
	}
	return VideoClip{Span: ls, Metadata: c.Metadata}, VideoClip{Span: rs, Metadata: c.Metadata}, true
}

// SplitAudioClip cuts an audio clip at the playhead.
func SplitAudioClip(c AudioClip, playhead float64) (left, right AudioClip, ok bool) {
	ls, rs, ok := splitSpan(c.Span, playhead)
	if !ok {
		return AudioClip{}, AudioClip{}, false
	}
	return AudioClip{Span: ls, Metadata: c.Metadata}, AudioClip{Span: rs, Metadata: c.Metadata}, true
}
