package intel

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/intel-engine/internal/model"
	"github.com/sells-group/intel-engine/pkg/anthropic"
)

// extractionPayload is the wire shape the completion body is expected to
// decode into. Opportunities and stakeholders from the model are advisory;
// the deterministic synthesizer and mapper are authoritative, so only the
// insight list is consumed.
type extractionPayload struct {
	Insights []struct {
		Type        string   `json:"type"`
		Description string   `json:"description"`
		Priority    string   `json:"priority"`
		Source      string   `json:"source"`
		Quotes      []string `json:"quotes"`
	} `json:"insights"`
	Opportunities json.RawMessage `json:"opportunities"`
	Stakeholders  json.RawMessage `json:"stakeholders"`
}

// ExtractionResult is the tagged outcome of parsing a completion body:
// either Parsed with the decoded insights, or unparsed with the raw text
// retained for logging.
type ExtractionResult struct {
	Parsed   bool
	Insights []model.Insight
	Raw      string
}

// parseExtraction decodes a completion body into insights. A body that does
// not decode as the expected structure yields Parsed=false rather than an
// error; the pipeline continues degraded.
func parseExtraction(text string, now time.Time) ExtractionResult {
	cleaned := cleanJSON(text)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return ExtractionResult{Parsed: false, Raw: text}
	}

	insights := make([]model.Insight, 0, len(payload.Insights))
	for _, in := range payload.Insights {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}
		insights = append(insights, model.Insight{
			Type:        normalizeInsightType(in.Type),
			Description: in.Description,
			Priority:    normalizePriority(in.Priority),
			Source:      in.Source,
			Date:        now,
			Quotes:      in.Quotes,
		})
	}

	return ExtractionResult{Parsed: true, Insights: insights}
}

// normalizeInsightType maps free-text type labels onto the known set,
// defaulting to pain_point.
func normalizeInsightType(t string) model.InsightType {
	switch model.InsightType(strings.ToLower(strings.TrimSpace(t))) {
	case model.InsightFeatureRequest:
		return model.InsightFeatureRequest
	case model.InsightBuyingSignal:
		return model.InsightBuyingSignal
	case model.InsightRisk:
		return model.InsightRisk
	case model.InsightCompetitive:
		return model.InsightCompetitive
	default:
		return model.InsightPainPoint
	}
}

// normalizePriority maps free-text priority labels onto the known set,
// defaulting to medium.
func normalizePriority(p string) model.Priority {
	switch model.Priority(strings.ToLower(strings.TrimSpace(p))) {
	case model.PriorityHigh:
		return model.PriorityHigh
	case model.PriorityLow:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

// extractInsights issues the single structured-extraction request for one
// processing call. A transport or API error propagates to the caller; a
// malformed completion body is recovered locally with an empty insight list.
func (p *Processor) extractInsights(ctx context.Context, data model.CustomerData) ([]model.Insight, error) {
	prompt := BuildExtractionPrompt(data)

	var system []anthropic.SystemBlock
	if p.cfg.CachePrompt {
		system = anthropic.BuildCachedSystemBlocks(extractionSystemPrompt)
	} else {
		system = []anthropic.SystemBlock{{Text: extractionSystemPrompt}}
	}

	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.cfg.Model,
		MaxTokens: p.cfg.MaxTokens,
		System:    system,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "intel: extraction request")
	}

	resp.Usage.LogCost(p.cfg.Model, "extraction")

	result := parseExtraction(resp.Text(), time.Now())
	if !result.Parsed {
		zap.L().Warn("intel: completion body not parseable, continuing with empty insights",
			zap.String("company", data.CompanyName),
			zap.Int("body_len", len(result.Raw)),
		)
		return []model.Insight{}, nil
	}

	return result.Insights, nil
}

// cleanJSON strips markdown code fences and any prose around the outermost
// JSON object so tolerant completions still decode.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
