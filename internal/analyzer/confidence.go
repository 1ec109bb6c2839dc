package analyzer

import "docintel/internal/domain"

// Summarize computes the average, minimum and maximum over a flat set of
// confidence scores. Empty input yields the zero summary, a defined
// sentinel meaning "no scored elements".
func Summarize(scores []float64) domain.ConfidenceSummary {
	if len(scores) == 0 {
		return domain.ConfidenceSummary{}
	}

	sum := 0.0
	min, max := scores[0], scores[0]
	for _, s := range scores {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	return domain.ConfidenceSummary{
		Average: sum / float64(len(scores)),
		Min:     min,
		Max:     max,
	}
}
