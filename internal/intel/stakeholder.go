package intel

import (
	"strings"

	"github.com/sells-group/intel-engine/internal/model"
)

// departmentPatterns maps title keywords to departments. Checked in order;
// first match wins.
var departmentPatterns = []struct {
	keyword    string
	department string
}{
	{"engineer", "Engineering"},
	{"developer", "Engineering"},
	{"cto", "Engineering"},
	{"product", "Product"},
	{"design", "Product"},
	{"finance", "Finance"},
	{"cfo", "Finance"},
	{"account", "Finance"},
	{"marketing", "Marketing"},
	{"cmo", "Marketing"},
	{"sales", "Sales"},
	{"revenue", "Sales"},
	{"operations", "Operations"},
	{"coo", "Operations"},
	{"it", "IT"},
	{"security", "IT"},
	{"support", "Customer Support"},
	{"success", "Customer Support"},
}

// departmentFromTitle infers a department from a job title. Returns "" when
// no pattern matches.
func departmentFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, p := range departmentPatterns {
		for _, word := range strings.FieldsFunc(lower, func(r rune) bool {
			return r == ' ' || r == ',' || r == '/' || r == '-'
		}) {
			if word == p.keyword || strings.HasPrefix(word, p.keyword) {
				return p.department
			}
		}
	}
	return ""
}

// MapStakeholders classifies every participant referenced across the
// customer's meetings into one of the five influence buckets using the
// participant's explicit role. Participants with no or unrecognized role are
// never dropped: they land in the influencers bucket. Duplicate participants
// (same name, case-insensitive) are classified once. Every bucket is always
// a non-nil slice.
func MapStakeholders(data model.CustomerData) model.StakeholderMap {
	smap := model.StakeholderMap{
		DecisionMakers: []model.Stakeholder{},
		Champions:      []model.Stakeholder{},
		Influencers:    []model.Stakeholder{},
		EndUsers:       []model.Stakeholder{},
		Blockers:       []model.Stakeholder{},
	}

	seen := make(map[string]bool)
	for _, p := range data.Participants() {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		s := model.Stakeholder{
			Name:       p.Name,
			Title:      p.Title,
			Department: departmentFromTitle(p.Title),
		}

		switch p.Role {
		case model.RoleDecisionMaker:
			smap.DecisionMakers = append(smap.DecisionMakers, s)
		case model.RoleChampion:
			smap.Champions = append(smap.Champions, s)
		case model.RoleEndUser:
			smap.EndUsers = append(smap.EndUsers, s)
		case model.RoleBlocker:
			smap.Blockers = append(smap.Blockers, s)
		default:
			// RoleInfluencer and anything unrecognized.
			smap.Influencers = append(smap.Influencers, s)
		}
	}

	return smap
}
