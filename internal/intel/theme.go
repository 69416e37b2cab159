package intel

import (
	"strings"

	"github.com/sells-group/intel-engine/internal/model"
)

// ThemeOther is the fallback theme for insights matching no keyword group.
const ThemeOther = "other"

// themeGroup pairs a theme key with the keywords that select it.
type themeGroup struct {
	key      string
	keywords []string
}

// themeGroups is checked in order; the first group with a keyword present in
// the insight description wins. Matching is case-insensitive substring.
var themeGroups = []themeGroup{
	{"reporting", []string{"report", "dashboard", "metrics", "analytics", "kpi", "visibility"}},
	{"user_experience", []string{"ui", "ux", "confusing", "usability", "intuitive", "navigation", "interface"}},
	{"performance", []string{"performance", "slow", "latency", "speed", "timeout", "crash"}},
	{"integration", []string{"integration", "integrate", "api", "webhook", "sync", "connector"}},
	{"pricing", []string{"pricing", "price", "cost", "budget", "expensive", "contract", "renewal"}},
	{"onboarding", []string{"onboarding", "training", "documentation", "adoption", "learning curve"}},
	{"security", []string{"security", "compliance", "sso", "audit", "permission", "gdpr"}},
}

// CategorizeTheme maps an insight to a theme key by keyword matching against
// its description. Deterministic and side-effect-free: identical description
// text always yields the identical theme key.
func CategorizeTheme(insight model.Insight) string {
	desc := strings.ToLower(insight.Description)
	for _, g := range themeGroups {
		for _, kw := range g.keywords {
			if strings.Contains(desc, kw) {
				return g.key
			}
		}
	}
	return ThemeOther
}

// themeTitles maps theme keys to opportunity titles.
var themeTitles = map[string]string{
	"reporting":       "Reporting & Analytics",
	"user_experience": "User Experience",
	"performance":     "Performance & Reliability",
	"integration":     "Integrations & API",
	"pricing":         "Pricing & Commercial Terms",
	"onboarding":      "Onboarding & Enablement",
	"security":        "Security & Compliance",
	ThemeOther:        "Additional Needs",
}

// themeProducts maps theme keys to the product line that addresses them.
// Themes without a natural product mapping are absent.
var themeProducts = map[string]string{
	"reporting":       "Analytics Suite",
	"user_experience": "Workspace Redesign",
	"performance":     "Performance Tier",
	"integration":     "Integration Hub",
	"onboarding":      "Customer Success Program",
	"security":        "Enterprise Security Add-on",
}

// ThemeTitle returns a human-readable opportunity title for a theme key.
func ThemeTitle(theme string) string {
	if t, ok := themeTitles[theme]; ok {
		return t
	}
	return ThemeTitle(ThemeOther)
}
