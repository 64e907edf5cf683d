package spacedrep

// BaseIntervals defines the expanding revision interval in days, indexed by
// the number of revisions completed so far.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationRevisions is the revision count at which a fully confident
// topic graduates to the long interval.
const GraduationRevisions = 6

// GraduatedIntervalDays is the revision interval for graduated topics.
const GraduatedIntervalDays = 90

// ResetConfidence is the confidence at or below which the interval
// restarts from the first stage.
const ResetConfidence = 2

// SkipRetryDays is how far a skipped revision is pushed out.
const SkipRetryDays = 1

// IntervalDays returns the gap before the next revision for a topic that has
// completed revisionCount revisions and now sits at confidence.
func IntervalDays(revisionCount, confidence int) int {
	if confidence <= ResetConfidence {
		return BaseIntervals[0]
	}
	if revisionCount >= GraduationRevisions && confidence >= 5 {
		return GraduatedIntervalDays
	}
	if revisionCount < 0 {
		revisionCount = 0
	}
	if revisionCount >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[revisionCount]
}
