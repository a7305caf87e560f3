package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finover/internal/metrics"
	"finover/internal/model"
	"finover/internal/portfolio"
	"finover/internal/predictor"
	"finover/internal/risk"
)

type errorResponse struct {
	Error  string `json:"error"`
	Symbol string `json:"symbol,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, symbol, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Symbol: symbol})
}

type predictRequest struct {
	Symbol     string   `json:"symbol"`
	RSI        *float64 `json:"rsi"`
	SMA        *float64 `json:"sma"`
	Volatility *float64 `json:"volatility"`
	Beta       *float64 `json:"beta"`
}

type featureEcho struct {
	RSI        float64 `json:"rsi"`
	SMA        float64 `json:"sma"`
	Volatility float64 `json:"volatility"`
	Beta       float64 `json:"beta"`
}

type predictResponse struct {
	Symbol         string      `json:"symbol"`
	RiskPercentage float64     `json:"risk_percentage"`
	RiskLevel      string      `json:"risk_level"`
	Source         string      `json:"source"` // "model" or "scorer"
	Features       featureEcho `json:"features"`
}

// handlePredictRisk evaluates one feature vector. The per-symbol ONNX
// model is preferred; when no trained artifact exists the deterministic
// scorer answers instead, with the source reported so callers can tell
// the difference.
func (s *Server) handlePredictRisk(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "", "symbol is required")
		return
	}
	if req.RSI == nil || req.SMA == nil || req.Volatility == nil || req.Beta == nil {
		writeError(w, http.StatusBadRequest, req.Symbol,
			"rsi, sma, volatility, and beta are all required")
		return
	}

	row := model.FeatureRow{
		Date:       time.Now().UTC(),
		RSI:        *req.RSI,
		SMA:        *req.SMA,
		Volatility: *req.Volatility,
		Beta:       *req.Beta,
	}
	if !row.Complete() {
		writeError(w, http.StatusBadRequest, req.Symbol, "feature values must be finite numbers")
		return
	}

	score, source, err := s.predict(req.Symbol, row)
	if err != nil {
		s.log.Error().Str("symbol", req.Symbol).Err(err).Msg("prediction failed")
		writeError(w, http.StatusInternalServerError, req.Symbol, err.Error())
		return
	}
	metrics.Predictions.WithLabelValues(source).Inc()

	var level model.RiskLevel
	if source == "model" {
		level = risk.LevelFromScore(score)
	} else {
		level, _ = s.scorer.ClassifyRow(row)
	}
	writeJSON(w, http.StatusOK, predictResponse{
		Symbol:         req.Symbol,
		RiskPercentage: score * 100,
		RiskLevel:      string(level),
		Source:         source,
		Features: featureEcho{
			RSI: row.RSI, SMA: row.SMA, Volatility: row.Volatility, Beta: row.Beta,
		},
	})
}

// predict tries the model boundary first and falls back to the
// deterministic scorer when no artifact exists for the symbol.
func (s *Server) predict(symbol string, row model.FeatureRow) (float64, string, error) {
	if s.predictor != nil {
		score, err := s.predictor.Predict(symbol, row)
		if err == nil {
			return score, "model", nil
		}
		if !errors.Is(err, predictor.ErrModelNotFound) {
			return 0, "", err
		}
		s.log.Debug().Str("symbol", symbol).Msg("no trained model, using scorer")
	}
	level, _ := s.scorer.ClassifyRow(row)
	return level.Score(), "scorer", nil
}

type portfolioRequest struct {
	Positions         []model.Position `json:"positions"`
	HighRiskThreshold *float64         `json:"high_risk_threshold"`
}

// handlePortfolioRisk aggregates position risk into the value-weighted
// portfolio report. Positions with negative quantity or price are
// rejected; a zero-value portfolio is answered with the defined
// zero-risk report.
func (s *Server) handlePortfolioRisk(w http.ResponseWriter, r *http.Request) {
	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	for _, p := range req.Positions {
		if p.Price < 0 || p.Quantity < 0 {
			writeError(w, http.StatusBadRequest, p.Symbol, "quantity and price must be non-negative")
			return
		}
	}

	var report model.PortfolioReport
	if req.HighRiskThreshold != nil {
		report = portfolio.AggregateWithThreshold(req.Positions, *req.HighRiskThreshold)
	} else {
		report = portfolio.Aggregate(req.Positions)
	}
	metrics.PortfolioEvaluations.Inc()
	writeJSON(w, http.StatusOK, report)
}

type recommendation struct {
	Symbol         string  `json:"symbol"`
	Date           string  `json:"date"`
	RiskLevel      string  `json:"risk_level"`
	RiskPercentage float64 `json:"risk_percentage"`
}

// handleRecommendLowRisk returns the lowest-risk symbols from the most
// recent stored assessments.
func (s *Server) handleRecommendLowRisk(w http.ResponseWriter, r *http.Request) {
	assessments, err := s.store.LatestAssessments(s.limit)
	if err != nil {
		s.log.Error().Err(err).Msg("load assessments")
		writeError(w, http.StatusInternalServerError, "", "failed to load assessments")
		return
	}

	out := make([]recommendation, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, recommendation{
			Symbol:         a.Symbol,
			Date:           a.Date.Format("2006-01-02"),
			RiskLevel:      string(a.Level),
			RiskPercentage: a.Score * 100,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
