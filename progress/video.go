package progress

// watchedThreshold is the playback percentage past which a video counts as
// watched. A tolerance for seeking near the end, not a precise guarantee.
const watchedThreshold = 90.0

// Watched reports whether a playback position counts as a completed view.
// An explicit end-of-stream event bypasses this and marks completion
// directly; time updates go through the threshold rule.
func Watched(currentTime, duration float64) bool {
	if duration <= 0 {
		return false
	}
	return currentTime/duration*100 >= watchedThreshold
}
