package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradebarrier/market-access/backend/internal/assessment"
	"github.com/tradebarrier/market-access/backend/internal/comtrade"
	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/logger"
)

// AssessmentHandler triggers the economic assessment calculator.
type AssessmentHandler struct {
	calculator *assessment.Calculator
	logger     *logger.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(calculator *assessment.Calculator, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		calculator: calculator,
		logger:     log,
	}
}

// Calculate handles POST /api/assessments
func (h *AssessmentHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var barrier contracts.Barrier
	if err := json.NewDecoder(r.Body).Decode(&barrier); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if barrier.Country1 == "" {
		respondError(w, http.StatusBadRequest, "country1 is required")
		return
	}

	report, err := h.calculator.Calculate(r.Context(), barrier)
	if err != nil {
		h.logger.WithError(err).WithField("country1", barrier.Country1).Error("Assessment failed")

		if comtrade.IsComtradeError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "assessment failed")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
