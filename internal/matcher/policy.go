package matcher

import "setscan/internal/config"

// Policy carries the confidence thresholds that govern fuzzy matches.
// Scores at or above AutoApplyThreshold are applied and learned; scores
// in [ReviewThreshold, AutoApplyThreshold) are returned for human review.
type Policy struct {
	AutoApplyThreshold int
	ReviewThreshold    int
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		AutoApplyThreshold: 85,
		ReviewThreshold:    75,
	}
}

// PolicyFromConfig builds a policy from application config.
func PolicyFromConfig(cfg *config.Config) Policy {
	if cfg == nil {
		return DefaultPolicy()
	}
	return Policy{
		AutoApplyThreshold: cfg.Matching.AutoApplyThreshold,
		ReviewThreshold:    cfg.Matching.ReviewThreshold,
	}.normalized()
}

func (p Policy) normalized() Policy {
	defaults := DefaultPolicy()
	if p.AutoApplyThreshold <= 0 || p.AutoApplyThreshold > 100 {
		p.AutoApplyThreshold = defaults.AutoApplyThreshold
	}
	if p.ReviewThreshold <= 0 || p.ReviewThreshold > 100 {
		p.ReviewThreshold = defaults.ReviewThreshold
	}
	if p.ReviewThreshold > p.AutoApplyThreshold {
		p.ReviewThreshold = p.AutoApplyThreshold
	}
	return p
}
