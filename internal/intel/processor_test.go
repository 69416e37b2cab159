package intel

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-engine/internal/config"
	"github.com/sells-group/intel-engine/internal/model"
)

func testConfig() config.AnthropicConfig {
	return config.AnthropicConfig{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 4096,
	}
}

func newTestProcessor(t *testing.T, client *mockAnthropicClient) *Processor {
	t.Helper()
	p, err := New(testConfig(), WithClient(client))
	require.NoError(t, err)
	return p
}

func TestNew_EmptyKeyFails(t *testing.T) {
	p, err := New(config.AnthropicConfig{})

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNew_InjectedClientNeedsNoKey(t *testing.T) {
	p, err := New(testConfig(), WithClient(&mockAnthropicClient{}))

	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProcessCustomerData_CompanyNamePreserved(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"insights": []}`), nil)

	report, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), model.CustomerData{
		CompanyName: "Globex",
	})

	require.NoError(t, err)
	assert.Equal(t, "Globex", report.CompanyName)
}

func TestProcessCustomerData_EmptyInputYieldsEmptyWellTypedReport(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"insights": []}`), nil)

	report, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), model.CustomerData{
		CompanyName: "Globex",
	})

	require.NoError(t, err)
	assert.NotNil(t, report.Insights)
	assert.Empty(t, report.Insights)
	assert.NotNil(t, report.Opportunities)
	assert.Empty(t, report.Opportunities)
	assert.NotNil(t, report.StakeholderMap.Influencers)
	assert.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.NotEmpty(t, report.SalesStrategy.Approach)
}

func TestProcessCustomerData_UpstreamErrorPropagates(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, errors.New("API rate limit exceeded"))

	report, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), model.CustomerData{
		CompanyName: "Globex",
	})

	assert.Nil(t, report)
	require.Error(t, err)
	assert.ErrorContains(t, err, "API rate limit exceeded")
}

func TestProcessCustomerData_MalformedBodyRecovers(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("Sorry, I cannot produce JSON today."), nil)

	report, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), model.CustomerData{
		CompanyName: "Globex",
	})

	require.NoError(t, err)
	assert.Equal(t, "Globex", report.CompanyName)
	assert.NotNil(t, report.Insights)
	assert.Empty(t, report.Insights)
	assert.Empty(t, report.Opportunities)
}

func TestProcessCustomerData_FullScenario(t *testing.T) {
	body := `{"insights": [
		{"type": "pain_point", "description": "Inconsistent performance review process across teams", "priority": "high", "source": "meeting 2026-03-02", "quotes": ["every team scores differently"]},
		{"type": "pain_point", "description": "Managers lack performance dashboards", "priority": "high", "source": "meeting 2026-03-02"}
	]}`
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(body), nil)

	data := model.CustomerData{
		CompanyName: "Initech",
		Meetings: []model.Meeting{{
			Transcript: "Our biggest issue is performance review consistency across departments.",
			Participants: []model.Participant{
				{Name: "Dana", Title: "VP People", Role: model.RoleDecisionMaker},
			},
		}},
	}

	report, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), data)

	require.NoError(t, err)
	require.NotEmpty(t, report.Insights)
	foundPerformancePain := false
	for _, in := range report.Insights {
		if in.Type == model.InsightPainPoint && strings.Contains(strings.ToLower(in.Description), "performance") {
			foundPerformancePain = true
		}
	}
	assert.True(t, foundPerformancePain)
	assert.NotEmpty(t, report.Opportunities)
	assert.GreaterOrEqual(t, len(report.StakeholderMap.DecisionMakers), 1)
	assert.Equal(t, "Dana", report.Outreach.PrimaryContact)
	assert.Equal(t, len(report.Insights), report.Appendix.InsightCount)
}

func TestProcessCustomerData_SendsSingleRequest(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"insights": []}`), nil).Once()

	_, err := newTestProcessor(t, client).ProcessCustomerData(context.Background(), model.CustomerData{
		CompanyName: "Globex",
		Meetings:    []model.Meeting{{Transcript: "a"}, {Transcript: "b"}},
		Emails:      []model.EmailRecord{{Body: "c"}},
	})

	require.NoError(t, err)
	client.AssertExpectations(t)
}
