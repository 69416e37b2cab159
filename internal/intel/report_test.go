package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-engine/internal/model"
)

func TestAssembleReport_AllFieldsPresent(t *testing.T) {
	data := NormalizeCustomerData(model.CustomerData{CompanyName: "Acme"})

	report := assembleReport(data, []model.Insight{}, []model.Opportunity{}, MapStakeholders(data))

	assert.Equal(t, "Acme", report.CompanyName)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.NotNil(t, report.Insights)
	assert.NotNil(t, report.Opportunities)
	assert.NotNil(t, report.SalesStrategy.TalkingPoints)
	assert.NotNil(t, report.SalesStrategy.NextSteps)
	assert.NotNil(t, report.Appendix.ThemeBreakdown)
	assert.NotNil(t, report.Appendix.DataSources)
}

func TestBuildStrategy_NoOpportunities(t *testing.T) {
	strategy := buildStrategy(model.CustomerData{CompanyName: "Acme"}, nil, model.StakeholderMap{})

	assert.Contains(t, strategy.Approach, "Insufficient interaction data")
	assert.Empty(t, strategy.KeyOpportunity)
	assert.NotEmpty(t, strategy.NextSteps)
}

func TestBuildStrategy_StrongTopOpportunity(t *testing.T) {
	opps := []model.Opportunity{
		{Title: "Reporting & Analytics", Need: "executive dashboards", Validation: model.ValidationStrong, Product: "Analytics Suite"},
		{Title: "User Experience", Need: "simpler navigation", Validation: model.ValidationWeak},
	}
	smap := model.StakeholderMap{
		DecisionMakers: []model.Stakeholder{{Name: "Dana", Title: "CFO"}},
		Champions:      []model.Stakeholder{{Name: "Chris", Title: "Ops"}},
	}

	strategy := buildStrategy(model.CustomerData{CompanyName: "Acme"}, opps, smap)

	assert.Equal(t, "Reporting & Analytics", strategy.KeyOpportunity)
	assert.Contains(t, strategy.Approach, "strongest validated need")
	assert.Len(t, strategy.TalkingPoints, 2)
	require.NotEmpty(t, strategy.NextSteps)
	assert.Contains(t, strategy.NextSteps[0], "Dana")
}

func TestBuildOutreach_PrefersDecisionMaker(t *testing.T) {
	smap := model.StakeholderMap{
		DecisionMakers: []model.Stakeholder{{Name: "Dana Smith", Title: "CFO"}},
		Champions:      []model.Stakeholder{{Name: "Chris", Title: "Ops"}},
	}
	opps := []model.Opportunity{{Need: "Better reporting", Validation: model.ValidationStrong}}

	outreach := buildOutreach(model.CustomerData{CompanyName: "Acme"}, opps, smap)

	assert.Equal(t, "Dana Smith", outreach.PrimaryContact)
	assert.Contains(t, outreach.EmailDraft, "Hi Dana")
	assert.Contains(t, outreach.EmailDraft, "better reporting")
	assert.Contains(t, outreach.CallScript, "Better reporting")
}

func TestBuildOutreach_NoStakeholders(t *testing.T) {
	outreach := buildOutreach(model.CustomerData{CompanyName: "Acme"}, nil, model.StakeholderMap{})

	assert.Empty(t, outreach.PrimaryContact)
	assert.Contains(t, outreach.EmailDraft, "Hi there")
	assert.NotEmpty(t, outreach.CallScript)
}

func TestBuildAppendix_Breakdown(t *testing.T) {
	data := model.CustomerData{
		CompanyName:    "Acme",
		Meetings:       []model.Meeting{{}},
		SupportTickets: []model.TicketRecord{{}, {}},
		CRMData:        model.CRMData{AccountID: "001"},
	}
	insights := []model.Insight{
		{Description: "dashboard gaps", Quotes: []string{"q1", "q2"}},
		{Description: "confusing UI"},
	}

	appendix := buildAppendix(data, insights)

	assert.Equal(t, 2, appendix.InsightCount)
	assert.Equal(t, 1, appendix.ThemeBreakdown["reporting"])
	assert.Equal(t, 1, appendix.ThemeBreakdown["user_experience"])
	assert.Contains(t, appendix.DataSources, "meetings (1)")
	assert.Contains(t, appendix.DataSources, "support tickets (2)")
	assert.Contains(t, appendix.DataSources, "crm")
	assert.Equal(t, []string{"q1", "q2"}, appendix.QuotedStatements)
}

func TestBuildAppendix_CapsQuotes(t *testing.T) {
	in := model.Insight{Description: "x"}
	for range maxAppendixQuotes + 5 {
		in.Quotes = append(in.Quotes, "quote")
	}

	appendix := buildAppendix(model.CustomerData{}, []model.Insight{in})

	assert.Len(t, appendix.QuotedStatements, maxAppendixQuotes)
}
