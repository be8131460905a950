package evaluations

// Eligibility is the scoring band assigned to an evaluated resume.
type Eligibility string

// Eligibility bands, ordered from strongest to weakest match.
const (
	EligibilityAutoShortlist  Eligibility = "AUTO_SHORTLIST"
	EligibilityPotentialMatch Eligibility = "POTENTIAL_MATCH"
	EligibilityFurtherReview  Eligibility = "FURTHER_REVIEW"
	EligibilityNotMatched     Eligibility = "NOT_MATCHED"
)

// furtherReviewGrace widens the review band below the further-review
// threshold so borderline candidates reach a human instead of being
// auto-rejected.
const furtherReviewGrace = 20

// Classify maps an overall score onto an eligibility band given a form's
// auto-shortlist threshold and further-review threshold. Scores within
// the grace window below the further-review threshold are classified
// FURTHER_REVIEW rather than NOT_MATCHED.
func Classify(score, autoShortlist, furtherReview float64) Eligibility {
	switch {
	case score >= autoShortlist:
		return EligibilityAutoShortlist
	case score >= furtherReview:
		return EligibilityPotentialMatch
	case score >= furtherReview-furtherReviewGrace:
		return EligibilityFurtherReview
	default:
		return EligibilityNotMatched
	}
}
