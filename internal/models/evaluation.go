package models

// UploadResult mirrors the backend's /upload response. TxtPath is only set
// when server-side text extraction completed synchronously; an empty value
// means the document is not yet usable for evaluation.
type UploadResult struct {
	OK      bool   `json:"ok"`
	Ready   bool   `json:"ready"`
	DocID   string `json:"docID"`
	StoreAs string `json:"storeAs"`
	TxtPath string `json:"txtPath,omitempty"`
	Message string `json:"message,omitempty"`
}

// EvaluationResponse is the raw superset of the two response schemas the
// backend may return: the legacy single-score shape and the newer six-metric
// shape. Either group (or both, transitionally) may be populated.
type EvaluationResponse struct {
	// Legacy shape
	RFPSummary string      `json:"rfpSummary,omitempty"`
	MatchRate  *int        `json:"matchRate,omitempty"`
	Radar      []RadarItem `json:"radar,omitempty"`
	Feedback   []string    `json:"feedback,omitempty"`
	Decision   string      `json:"decision,omitempty"`

	// Six-metric shape
	Metrics       map[string]MetricDetail `json:"metrics,omitempty"`
	MetricsScores map[string]int          `json:"metricsScores,omitempty"`
	MetricsTotal  *float64                `json:"metricsTotal10,omitempty"`
	Similarity    *SimilarityBlock        `json:"similarity,omitempty"`
	GuideReview   *GuideReviewBlock       `json:"guideReview,omitempty"`
}

type MetricDetail struct {
	Metric   string `json:"metric"`
	Score    int    `json:"score_10"`
	Feedback string `json:"feedback,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

type RadarItem struct {
	Axis  string `json:"axis"`
	Value int    `json:"value"`
}

type SimilarityBlock struct {
	Percent  int    `json:"similarity_percent"`
	Feedback string `json:"feedback"`
}

type GuideReviewBlock struct {
	Score    int    `json:"overall_score_10"`
	Feedback string `json:"feedback"`
}

type DecisionBadge string

const (
	BadgePositive DecisionBadge = "positive"
	BadgeNeutral  DecisionBadge = "neutral"
	BadgeNegative DecisionBadge = "negative"
	// BadgeUnknown covers absent or unrecognized decisions; rendered
	// neutral-gray by the frontend.
	BadgeUnknown DecisionBadge = "unknown"
)

// UnifiedResult is the single display model the rest of the system sees,
// whichever schema the backend answered with. Immutable once constructed;
// replaced wholesale on each new evaluation.
type UnifiedResult struct {
	Summary        string            `json:"summary,omitempty"`
	MatchRate      *int              `json:"match_rate,omitempty"`
	Radar          []RadarItem       `json:"radar"`
	Feedback       []string          `json:"feedback,omitempty"`
	Decision       string            `json:"decision,omitempty"`
	DecisionBadge  DecisionBadge     `json:"decision_badge"`
	Metrics        []MetricScore     `json:"metrics,omitempty"`
	AggregateScore *float64          `json:"aggregate_score,omitempty"`
	Similarity     *SimilarityBlock  `json:"similarity,omitempty"`
	GuideReview    *GuideReviewBlock `json:"guide_review,omitempty"`
}

type MetricScore struct {
	Code     string `json:"code"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
