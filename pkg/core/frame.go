package core

// Frame-position conversion between clip-relative and timeline-absolute
// frame numbers. Both functions are total.

// ToRelative maps an absolute timeline frame to a clip-relative frame.
// An absolute frame before the clip start clamps to 0; callers that must
// reject out-of-span frames check Clip.Contains first.
func ToRelative(absFrame, clipStart int) int {
	if absFrame < clipStart {
		return 0
	}
	return absFrame - clipStart
}

// ToAbsolute maps a clip-relative frame back to the absolute timeline.
func ToAbsolute(relFrame, clipStart int) int {
	return clipStart + relFrame
}
