package scoring

// Score weights for the worker–shift compatibility model. These values are
// a compatibility surface shared with downstream reporting: changing any
// of them (or their order of application) changes persisted scores.
const (
	// BaseScore is the starting value for every candidate pair.
	BaseScore = 50.0

	// SkillWeight scales the fraction of required skills the worker holds.
	SkillWeight = 30.0

	// OpenShiftBonus is the flat skill component for shifts that require
	// no skills at all.
	OpenShiftBonus = 15.0

	// RatingWeight scales the worker's rating normalized to MaxRating.
	RatingWeight = 15.0

	// LocationBonus applies on an exact, case-sensitive location match.
	LocationBonus = 10.0

	// TopRatedThreshold is the rating at or above which a worker earns the
	// top-rated reason line.
	TopRatedThreshold = 4.5

	// MaxRating is the rating scale ceiling.
	MaxRating = 5.0
)

// Reason strings surfaced alongside the score. Display-only; no caller
// parses them.
const (
	ReasonAllSkillsMatched = "All required skills matched"
	ReasonTopRated         = "Top-rated crew member"
	ReasonSameLocation     = "Same location"
)
