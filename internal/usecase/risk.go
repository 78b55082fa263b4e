package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// Score weights of the individual risk rules. The rules are independent and
// additive; the final score is clamped to 100.
const (
	riskWeightHighValue    = 20
	riskWeightBotSpeed     = 50
	riskWeightNoUserAgent  = 30
	riskWeightAnomalyDraw  = 15
	botSpeedWindow         = 5000 * time.Millisecond
	anomalyDrawUpperDecile = 0.9
)

// RiskScorer computes a bounded 0-100 heuristic risk score for a candidate
// commission event. It is an explainable review gate, not a classifier: high
// scores route the entry into flagged status for manual review. The anomaly
// draw source is injected so tests stay deterministic.
type RiskScorer struct {
	highValue decimal.Decimal
	draw      func() float64
}

// NewRiskScorer constructs a scorer with the configured high-value threshold
// and a uniform [0,1) draw source.
func NewRiskScorer(highValue decimal.Decimal, draw func() float64) *RiskScorer {
	return &RiskScorer{highValue: highValue, draw: draw}
}

// Score evaluates the rule set against the transaction features.
func (s *RiskScorer) Score(features model.RiskFeatures) int {
	score := 0

	if features.Amount.GreaterThan(s.highValue) {
		score += riskWeightHighValue
	}

	if features.ClickToPurchase != nil && *features.ClickToPurchase < botSpeedWindow {
		score += riskWeightBotSpeed
	}

	if features.UserAgent == "" {
		score += riskWeightNoUserAgent
	}

	if s.draw() > anomalyDrawUpperDecile {
		score += riskWeightAnomalyDraw
	}

	if score > 100 {
		score = 100
	}
	return score
}
