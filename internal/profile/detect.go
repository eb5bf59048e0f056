package profile

import (
	"fmt"
	"strings"
)

// detectionThreshold is the minimum weighted score for a confident match.
const detectionThreshold = 2

// Score computes the weighted detection score of the profile against the
// first pages of statement text: 1 per keyword, 2 per strong indicator and
// 3 per account-pattern match.
func (p *Profile) Score(text string) int {
	upper := strings.ToUpper(text)
	score := 0
	for _, kw := range p.Keywords {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			score++
		}
	}
	for _, ind := range p.StrongIndicators {
		if strings.Contains(upper, strings.ToUpper(ind)) {
			score += 2
		}
	}
	for _, re := range p.AccountPatterns {
		if re.MatchString(text) {
			score += 3
		}
	}
	return score
}

// Detect picks the highest-scoring profile for the statement text. It
// returns ErrUnsupportedBank when no profile reaches the threshold.
func Detect(text string) (*Profile, error) {
	var best *Profile
	bestScore := 0
	for _, p := range All() {
		if s := p.Score(text); s > bestScore {
			best, bestScore = p, s
		}
	}
	if best == nil || bestScore < detectionThreshold {
		return nil, fmt.Errorf("%w: no profile matched the statement text", ErrUnsupportedBank)
	}
	return best, nil
}
