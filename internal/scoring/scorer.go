package scoring

import (
	"math"

	"github.com/crewware/roster/internal/store"
)

// Scorer computes the compatibility score for a worker–shift pair: a base
// of 50 plus skill, rating, and location components, gated to zero when
// the worker is unavailable on the shift's date.
//
// The attainable ceiling is 105 (all required skills matched, rating 5,
// same location). That exceeds the nominal 0–100 band and is deliberately
// left unclamped; downstream consumers treat the score as ordinal.
type Scorer struct {
	availability *AvailabilityIndex
}

func NewScorer(availability *AvailabilityIndex) *Scorer {
	return &Scorer{availability: availability}
}

// Score returns the integer compatibility score and the ordered reason
// list for one worker–shift pair. Pure; no side effects.
func (s *Scorer) Score(w *store.Worker, sh *store.Shift) (int, []string) {
	score := BaseScore
	var reasons []string

	// Skill component
	if len(sh.RequiredSkills) == 0 {
		score += OpenShiftBonus
	} else {
		matched := countMatchedSkills(w.Skills, sh.RequiredSkills)
		score += SkillWeight * float64(matched) / float64(len(sh.RequiredSkills))
		if matched == len(sh.RequiredSkills) {
			reasons = append(reasons, ReasonAllSkillsMatched)
		}
	}

	// Rating component
	score += RatingWeight * (w.Rating / MaxRating)
	if w.Rating >= TopRatedThreshold {
		reasons = append(reasons, ReasonTopRated)
	}

	// Location component, exact match only (case-sensitive)
	if w.Location == sh.Location {
		score += LocationBonus
		reasons = append(reasons, ReasonSameLocation)
	}

	// Hard availability gate: an unavailable worker scores exactly zero
	// no matter how well the other components line up.
	if !s.availability.Available(w.ID, sh.StartTime) {
		return 0, reasons
	}

	return int(math.Round(score)), reasons
}

func countMatchedSkills(have, required []string) int {
	held := make(map[string]struct{}, len(have))
	for _, skill := range have {
		held[skill] = struct{}{}
	}
	matched := 0
	for _, skill := range required {
		if _, ok := held[skill]; ok {
			matched++
		}
	}
	return matched
}
