package intel

import (
	"sort"

	"github.com/sells-group/intel-engine/internal/model"
)

// ThemeGroup is one theme's worth of insights, in input order.
type ThemeGroup struct {
	Theme    string
	Insights []model.Insight
}

// GroupInsightsByTheme partitions insights by CategorizeTheme. Groups are
// returned in first-seen-theme order and each group preserves input order,
// so every insight appears in exactly one group and the sum of group sizes
// equals len(insights).
func GroupInsightsByTheme(insights []model.Insight) []ThemeGroup {
	byTheme := make(map[string]int) // theme → index into groups
	var groups []ThemeGroup

	for _, in := range insights {
		theme := CategorizeTheme(in)
		idx, ok := byTheme[theme]
		if !ok {
			idx = len(groups)
			byTheme[theme] = idx
			groups = append(groups, ThemeGroup{Theme: theme})
		}
		groups[idx].Insights = append(groups[idx].Insights, in)
	}

	return groups
}

// IdentifyOpportunities synthesizes one opportunity per non-empty theme
// group and orders the result descending by validation strength. The sort is
// stable: opportunities of equal validation keep first-seen-theme order. An
// empty insight list yields an empty (non-nil) opportunity list.
func IdentifyOpportunities(insights []model.Insight, data model.CustomerData) []model.Opportunity {
	groups := GroupInsightsByTheme(insights)

	opportunities := make([]model.Opportunity, 0, len(groups))
	for _, g := range groups {
		opportunities = append(opportunities, model.Opportunity{
			Title:      ThemeTitle(g.Theme),
			Need:       groupNeed(g),
			Validation: CalculateValidation(g.Insights),
			Product:    themeProducts[g.Theme],
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].Validation.Rank() > opportunities[j].Validation.Rank()
	})

	return opportunities
}

// groupNeed picks the need statement for a theme group: the description of
// the first highest-priority insight in the group.
func groupNeed(g ThemeGroup) string {
	best := -1
	bestWeight := 0
	for i, in := range g.Insights {
		if w := priorityWeight(in.Priority); w > bestWeight {
			best = i
			bestWeight = w
		}
	}
	if best < 0 {
		return ""
	}
	return g.Insights[best].Description
}
