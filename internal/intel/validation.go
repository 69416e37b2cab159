package intel

import "github.com/sells-group/intel-engine/internal/model"

// Priority weights for the validation score.
const (
	weightHigh   = 3
	weightMedium = 2
	weightLow    = 1
)

// Validation banding over the weighted score. Three high-priority insights
// (score 9) rate strong; a single low-priority insight (score 1) rates weak.
const (
	strongScoreThreshold    = 9
	strongHighPairThreshold = 5 // with at least two high-priority insights
	weakScoreCeiling        = 2
)

// priorityWeight returns the score contribution of one insight. Unknown
// priorities count as medium so partial extraction data never zeroes a group.
func priorityWeight(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return weightHigh
	case model.PriorityLow:
		return weightLow
	default:
		return weightMedium
	}
}

// CalculateValidation rates a group of insights by count and priority
// composition. The score is the sum of per-insight priority weights, so
// adding an insight never lowers the rating and a group with strictly
// more/higher-priority insights never ranks below a smaller/lower one.
func CalculateValidation(insights []model.Insight) model.Validation {
	if len(insights) == 0 {
		return model.ValidationWeak
	}

	score := 0
	highs := 0
	for _, in := range insights {
		score += priorityWeight(in.Priority)
		if in.Priority == model.PriorityHigh {
			highs++
		}
	}

	switch {
	case score >= strongScoreThreshold:
		return model.ValidationStrong
	case score >= strongHighPairThreshold && highs >= 2:
		return model.ValidationStrong
	case score <= weakScoreCeiling:
		return model.ValidationWeak
	default:
		return model.ValidationMedium
	}
}
