package intel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/intel-engine/internal/model"
)

// maxAppendixQuotes caps how many verbatim quotes the appendix carries.
const maxAppendixQuotes = 10

// assembleReport composes the final IntelligenceReport from the computed
// artifacts. CompanyName always equals the normalized input's company name,
// regardless of whether upstream stages degraded.
func assembleReport(data model.CustomerData, insights []model.Insight, opportunities []model.Opportunity, smap model.StakeholderMap) *model.IntelligenceReport {
	return &model.IntelligenceReport{
		ID:             uuid.NewString(),
		CompanyName:    data.CompanyName,
		GeneratedAt:    time.Now().UTC(),
		Insights:       insights,
		Opportunities:  opportunities,
		StakeholderMap: smap,
		SalesStrategy:  buildStrategy(data, opportunities, smap),
		Outreach:       buildOutreach(data, opportunities, smap),
		Appendix:       buildAppendix(data, insights),
	}
}

// buildStrategy derives the templated strategy section from the ranked
// opportunities and the stakeholder map.
func buildStrategy(data model.CustomerData, opportunities []model.Opportunity, smap model.StakeholderMap) model.SalesStrategy {
	strategy := model.SalesStrategy{
		TalkingPoints: []string{},
		NextSteps:     []string{},
	}

	if len(opportunities) == 0 {
		strategy.Approach = fmt.Sprintf("Insufficient interaction data for %s. Schedule a discovery call to surface current priorities.", data.CompanyName)
		strategy.NextSteps = append(strategy.NextSteps, "Schedule a discovery call")
		return strategy
	}

	top := opportunities[0]
	strategy.KeyOpportunity = top.Title

	switch top.Validation {
	case model.ValidationStrong:
		strategy.Approach = fmt.Sprintf("Lead with %s: repeated, high-priority signals make this the strongest validated need at %s.", top.Title, data.CompanyName)
	case model.ValidationMedium:
		strategy.Approach = fmt.Sprintf("Probe %s further: signals at %s are promising but need one more confirming conversation.", top.Title, data.CompanyName)
	default:
		strategy.Approach = fmt.Sprintf("Evidence at %s is thin. Use the next touchpoint to validate whether %s is a real priority.", data.CompanyName, top.Title)
	}

	for i, opp := range opportunities {
		if i >= 3 {
			break
		}
		point := fmt.Sprintf("%s (%s validation): %s", opp.Title, opp.Validation, opp.Need)
		strategy.TalkingPoints = append(strategy.TalkingPoints, point)
	}

	if len(smap.DecisionMakers) > 0 {
		strategy.NextSteps = append(strategy.NextSteps,
			fmt.Sprintf("Present the %s business case to %s", top.Title, smap.DecisionMakers[0].Name))
	} else {
		strategy.NextSteps = append(strategy.NextSteps, "Identify the economic decision maker")
	}
	if len(smap.Champions) > 0 {
		strategy.NextSteps = append(strategy.NextSteps,
			fmt.Sprintf("Arm champion %s with supporting material", smap.Champions[0].Name))
	}
	if top.Product != "" {
		strategy.NextSteps = append(strategy.NextSteps,
			fmt.Sprintf("Prepare a %s demo focused on %s", top.Product, strings.ToLower(top.Need)))
	}

	return strategy
}

// buildOutreach drafts templated outreach content keyed off the top
// opportunity and the highest-leverage stakeholder.
func buildOutreach(data model.CustomerData, opportunities []model.Opportunity, smap model.StakeholderMap) model.Outreach {
	var contact model.Stakeholder
	switch {
	case len(smap.DecisionMakers) > 0:
		contact = smap.DecisionMakers[0]
	case len(smap.Champions) > 0:
		contact = smap.Champions[0]
	case len(smap.Influencers) > 0:
		contact = smap.Influencers[0]
	}

	greeting := "Hi there"
	if contact.Name != "" {
		greeting = "Hi " + firstName(contact.Name)
	}

	need := "your team's current priorities"
	if len(opportunities) > 0 && opportunities[0].Need != "" {
		need = opportunities[0].Need
	}

	email := fmt.Sprintf(`%s,

Following up on our recent conversations with %s — the recurring theme has been %s.

We have helped similar teams address exactly this, and I would value 20 minutes to walk through what that could look like for you.

Best regards`, greeting, data.CompanyName, lowerFirst(need))

	script := fmt.Sprintf(`Opening: reference the most recent interaction with %s.
Key need to validate: %s
Listen for: priority, timeline, budget ownership.
Close: propose a focused follow-up with the decision maker.`, data.CompanyName, need)

	return model.Outreach{
		PrimaryContact: contact.Name,
		EmailDraft:     email,
		CallScript:     script,
	}
}

// buildAppendix summarizes provenance: counts, theme breakdown, data
// sources, and supporting quotes.
func buildAppendix(data model.CustomerData, insights []model.Insight) model.Appendix {
	appendix := model.Appendix{
		InsightCount:     len(insights),
		ThemeBreakdown:   map[string]int{},
		DataSources:      []string{},
		QuotedStatements: []string{},
	}

	for _, g := range GroupInsightsByTheme(insights) {
		appendix.ThemeBreakdown[g.Theme] = len(g.Insights)
	}

	if n := len(data.Meetings); n > 0 {
		appendix.DataSources = append(appendix.DataSources, fmt.Sprintf("meetings (%d)", n))
	}
	if n := len(data.Emails); n > 0 {
		appendix.DataSources = append(appendix.DataSources, fmt.Sprintf("emails (%d)", n))
	}
	if n := len(data.SupportTickets); n > 0 {
		appendix.DataSources = append(appendix.DataSources, fmt.Sprintf("support tickets (%d)", n))
	}
	if data.ProductUsage.TotalSessions > 0 {
		appendix.DataSources = append(appendix.DataSources, "product usage telemetry")
	}
	if data.CRMData.AccountID != "" {
		appendix.DataSources = append(appendix.DataSources, "crm")
	}

	for _, in := range insights {
		for _, q := range in.Quotes {
			if len(appendix.QuotedStatements) >= maxAppendixQuotes {
				return appendix
			}
			appendix.QuotedStatements = append(appendix.QuotedStatements, q)
		}
	}

	return appendix
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
