package services

import (
	"icnpm/rfp-analyzer/internal/models"
)

// metricOrder is the fixed axis order for radar series derived from
// six-metric scores, regardless of map iteration order or any legacy radar
// array present in the same payload.
var metricOrder = []string{"CP", "RI", "FP", "ETS", "IO", "RM"}

// noFeedbackPlaceholder keeps the UI from ever rendering an empty
// explanatory label.
const noFeedbackPlaceholder = "no response"

type NormalizerService interface {
	Normalize(resp *models.EvaluationResponse) *models.UnifiedResult
}

type normalizerService struct{}

func NewNormalizerService() NormalizerService {
	return &normalizerService{}
}

// Normalize implements NormalizerService. Six-metric scores take precedence
// for scoring displays; the legacy radar array is used verbatim only when
// they are absent.
func (n *normalizerService) Normalize(resp *models.EvaluationResponse) *models.UnifiedResult {
	result := &models.UnifiedResult{
		Summary:        resp.RFPSummary,
		MatchRate:      resp.MatchRate,
		Feedback:       resp.Feedback,
		Decision:       resp.Decision,
		DecisionBadge:  DecisionBadgeFor(resp.Decision),
		AggregateScore: resp.MetricsTotal,
		Similarity:     resp.Similarity,
		GuideReview:    resp.GuideReview,
	}

	if len(resp.MetricsScores) > 0 {
		for _, code := range metricOrder {
			score, ok := resp.MetricsScores[code]
			if !ok {
				continue
			}
			result.Metrics = append(result.Metrics, models.MetricScore{
				Code:     code,
				Score:    score,
				Feedback: metricFeedback(resp.Metrics[code]),
			})
			result.Radar = append(result.Radar, models.RadarItem{
				Axis:  code,
				Value: score,
			})
		}
	} else {
		result.Radar = resp.Radar
	}

	return result
}

// metricFeedback resolves per-metric feedback: feedback text, then the raw
// model output, then an explicit placeholder. Never an empty string.
func metricFeedback(detail models.MetricDetail) string {
	if detail.Feedback != "" {
		return detail.Feedback
	}
	if detail.Raw != "" {
		return detail.Raw
	}
	return noFeedbackPlaceholder
}

// DecisionBadgeFor maps the backend's ternary decision onto a badge
// category. Anything unrecognized falls back to the unknown badge.
func DecisionBadgeFor(decision string) models.DecisionBadge {
	switch decision {
	case "SUBMIT":
		return models.BadgePositive
	case "HOLD":
		return models.BadgeNeutral
	case "REWRITE":
		return models.BadgeNegative
	default:
		return models.BadgeUnknown
	}
}
