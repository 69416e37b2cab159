package intel

import (
	"fmt"
	"strings"

	"github.com/sells-group/intel-engine/internal/model"
)

// maxTranscriptChars bounds how much of each transcript enters the prompt.
const maxTranscriptChars = 6000

// maxBodyChars bounds email bodies and ticket descriptions in the prompt.
const maxBodyChars = 1500

// extractionSystemPrompt instructs the model to return the structured
// extraction payload. The schema mirrors parseExtraction.
const extractionSystemPrompt = `You are a sales intelligence analyst reviewing customer interaction records. Extract concrete observations from the provided material. Return a valid JSON object with this shape:
{
  "insights": [{"type": "pain_point|feature_request|buying_signal|risk|competitive", "description": "<specific observation>", "priority": "high|medium|low", "source": "<where it was observed>", "quotes": ["<verbatim supporting quote>"]}],
  "opportunities": [{"title": "<short name>", "need": "<customer need>", "product": "<matching product, optional>"}],
  "stakeholders": {"notes": "<observations about the people involved>"}
}
Base every insight on the supplied text. Do not invent data. Return only JSON.`

const extractionUserPrompt = `Company: %s

%s
Extract all sales-relevant insights from the material above.`

// BuildExtractionPrompt assembles the user prompt for one processing call,
// summarizing every available text source as labeled context blocks.
func BuildExtractionPrompt(data model.CustomerData) string {
	var b strings.Builder

	for i, m := range data.Meetings {
		fmt.Fprintf(&b, "--- Meeting %d (%s, %d min) ---\n", i+1, m.Date.Format("2006-01-02"), m.Duration)
		if len(m.Participants) > 0 {
			b.WriteString("Participants: ")
			for j, p := range m.Participants {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.Name)
				if p.Title != "" {
					b.WriteString(" (" + p.Title + ")")
				}
			}
			b.WriteString("\n")
		}
		if len(m.Topics) > 0 {
			b.WriteString("Topics: " + strings.Join(m.Topics, ", ") + "\n")
		}
		b.WriteString("Transcript:\n" + truncate(m.Transcript, maxTranscriptChars) + "\n\n")
	}

	for i, e := range data.Emails {
		fmt.Fprintf(&b, "--- Email %d (%s) ---\n", i+1, e.Date.Format("2006-01-02"))
		if e.From != "" {
			b.WriteString("From: " + e.From + "\n")
		}
		if e.Subject != "" {
			b.WriteString("Subject: " + e.Subject + "\n")
		}
		b.WriteString(truncate(e.Body, maxBodyChars) + "\n\n")
	}

	for _, t := range data.SupportTickets {
		fmt.Fprintf(&b, "--- Support Ticket %s (%s, priority %s) ---\n", t.ID, t.Status, t.Priority)
		if t.Subject != "" {
			b.WriteString("Subject: " + t.Subject + "\n")
		}
		b.WriteString(truncate(t.Description, maxBodyChars) + "\n\n")
	}

	if usageCtx := formatUsageContext(data.ProductUsage); usageCtx != "" {
		b.WriteString(usageCtx + "\n")
	}
	if crmCtx := formatCRMContext(data.CRMData); crmCtx != "" {
		b.WriteString(crmCtx + "\n")
	}

	material := b.String()
	if material == "" {
		material = "(no interaction records available)\n"
	}

	return fmt.Sprintf(extractionUserPrompt, data.CompanyName, material)
}

// formatUsageContext formats product telemetry into a context block.
// Returns "" when there is no telemetry.
func formatUsageContext(u model.ProductUsage) string {
	if u.TotalSessions == 0 && len(u.FeaturesUsed) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("--- Product Usage ---\n")
	fmt.Fprintf(&b, "Total Sessions: %d\n", u.TotalSessions)
	if u.AvgSessionDuration > 0 {
		fmt.Fprintf(&b, "Avg Session Duration: %.1f min\n", u.AvgSessionDuration)
	}
	if len(u.FeaturesUsed) > 0 {
		b.WriteString("Features Used: " + strings.Join(u.FeaturesUsed, ", ") + "\n")
	}
	if !u.LastActivity.IsZero() {
		b.WriteString("Last Activity: " + u.LastActivity.Format("2006-01-02") + "\n")
	}
	return b.String()
}

// formatCRMContext formats CRM state into a context block. Returns "" when
// no account is linked.
func formatCRMContext(c model.CRMData) string {
	if c.AccountID == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("--- CRM State ---\n")
	b.WriteString("Account: " + c.AccountID + "\n")
	if c.Stage != "" {
		b.WriteString("Stage: " + c.Stage + "\n")
	}
	if c.Value > 0 {
		fmt.Fprintf(&b, "Deal Value: $%.0f\n", c.Value)
	}
	if c.Probability > 0 {
		fmt.Fprintf(&b, "Probability: %.0f%%\n", c.Probability*100)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n[truncated]"
}
