package intel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-engine/internal/model"
)

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func TestParseExtraction_ValidPayload(t *testing.T) {
	body := `{"insights": [{"type": "pain_point", "description": "Reports lack drill-down", "priority": "high", "source": "meeting 1", "quotes": ["we can't drill into the numbers"]}]}`

	result := parseExtraction(body, now)

	require.True(t, result.Parsed)
	require.Len(t, result.Insights, 1)
	in := result.Insights[0]
	assert.Equal(t, model.InsightPainPoint, in.Type)
	assert.Equal(t, model.PriorityHigh, in.Priority)
	assert.Equal(t, "meeting 1", in.Source)
	assert.Equal(t, now, in.Date)
	assert.Len(t, in.Quotes, 1)
}

func TestParseExtraction_CodeFencedPayload(t *testing.T) {
	body := "Here is the analysis:\n```json\n{\"insights\": [{\"type\": \"risk\", \"description\": \"Churn risk\", \"priority\": \"high\"}]}\n```"

	result := parseExtraction(body, now)

	require.True(t, result.Parsed)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, model.InsightRisk, result.Insights[0].Type)
}

func TestParseExtraction_PlainTextIsUnparsed(t *testing.T) {
	result := parseExtraction("I could not find any insights in the provided material.", now)

	assert.False(t, result.Parsed)
	assert.NotEmpty(t, result.Raw)
	assert.Empty(t, result.Insights)
}

func TestParseExtraction_EmptyInsightListParses(t *testing.T) {
	result := parseExtraction(`{"insights": [], "opportunities": [], "stakeholders": {}}`, now)

	require.True(t, result.Parsed)
	assert.NotNil(t, result.Insights)
	assert.Empty(t, result.Insights)
}

func TestParseExtraction_SkipsDescriptionlessInsights(t *testing.T) {
	body := `{"insights": [{"type": "pain_point", "description": "  ", "priority": "high"}, {"description": "real one"}]}`

	result := parseExtraction(body, now)

	require.True(t, result.Parsed)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, "real one", result.Insights[0].Description)
}

func TestParseExtraction_NormalizesUnknownLabels(t *testing.T) {
	body := `{"insights": [{"type": "complaint", "description": "x", "priority": "urgent"}]}`

	result := parseExtraction(body, now)

	require.True(t, result.Parsed)
	assert.Equal(t, model.InsightPainPoint, result.Insights[0].Type)
	assert.Equal(t, model.PriorityMedium, result.Insights[0].Priority)
}

func TestCleanJSON_StripsFencesAndProse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("Sure, here you go: {\"a\":1} hope that helps"))
	assert.Equal(t, "no braces here", cleanJSON("  no braces here  "))
}

func TestBuildExtractionPrompt_IncludesAllSources(t *testing.T) {
	data := model.CustomerData{
		CompanyName: "Acme Corp",
		Meetings: []model.Meeting{{
			Date:         now,
			Duration:     45,
			Participants: []model.Participant{{Name: "Dana", Title: "CFO"}},
			Topics:       []string{"renewal"},
			Transcript:   "We struggle with performance review consistency.",
		}},
		Emails: []model.EmailRecord{{
			Date: now, From: "dana@acme.test", Subject: "Follow-up", Body: "Re: dashboards",
		}},
		SupportTickets: []model.TicketRecord{{
			ID: "T-1", Status: "open", Priority: "high", Subject: "Slow exports", Description: "Exports time out",
		}},
		ProductUsage: model.ProductUsage{TotalSessions: 40, FeaturesUsed: []string{"reports"}},
		CRMData:      model.CRMData{AccountID: "001", Stage: "negotiation", Value: 50000},
	}

	prompt := BuildExtractionPrompt(data)

	assert.Contains(t, prompt, "Acme Corp")
	assert.Contains(t, prompt, "performance review consistency")
	assert.Contains(t, prompt, "Dana (CFO)")
	assert.Contains(t, prompt, "Follow-up")
	assert.Contains(t, prompt, "Support Ticket T-1")
	assert.Contains(t, prompt, "Total Sessions: 40")
	assert.Contains(t, prompt, "Stage: negotiation")
}

func TestBuildExtractionPrompt_EmptyInput(t *testing.T) {
	prompt := BuildExtractionPrompt(model.CustomerData{CompanyName: "Empty Co"})

	assert.Contains(t, prompt, "Empty Co")
	assert.Contains(t, prompt, "no interaction records available")
}

func TestBuildExtractionPrompt_TruncatesLongTranscripts(t *testing.T) {
	long := make([]byte, maxTranscriptChars+500)
	for i := range long {
		long[i] = 'a'
	}
	data := model.CustomerData{
		CompanyName: "Acme",
		Meetings:    []model.Meeting{{Transcript: string(long)}},
	}

	prompt := BuildExtractionPrompt(data)

	assert.Contains(t, prompt, "[truncated]")
	assert.Less(t, len(prompt), len(long)+2000)
}
