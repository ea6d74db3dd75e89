package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/ZanzyTHEbar/layoff-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/prediction"
)

// HealthChecker reports on an optional backing service
type HealthChecker interface {
	IsEnabled() bool
	HealthCheck(ctx context.Context) error
}

// Handler serves the prediction API
type Handler struct {
	scorer  *prediction.Scorer
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
	tracer  *monitoring.Tracer
	redis   HealthChecker
	version string

	profileSchema    *Schema
	predictionSchema *Schema
}

// NewHandler wires the API handlers. redis may be nil.
func NewHandler(scorer *prediction.Scorer, metrics *monitoring.Metrics, logger *monitoring.Logger, tracer *monitoring.Tracer, redis HealthChecker, version string) *Handler {
	return &Handler{
		scorer:           scorer,
		metrics:          metrics,
		logger:           logger,
		tracer:           tracer,
		redis:            redis,
		version:          version,
		profileSchema:    MustLoadSchema("profile"),
		predictionSchema: MustLoadSchema("prediction"),
	}
}

// Predict godoc
// @Summary      Predict layoff risk
// @Description  Scores an employee profile and returns the risk assessment with retention recommendations. Numeric fields may be sent as strings or numbers.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        profile  body      PredictRequest  true  "Employee profile"
// @Success      200      {object}  PredictResponse
// @Failure      400      {object}  apperrors.AppError
// @Failure      413      {object}  apperrors.AppError
// @Failure      429      {object}  apperrors.AppError
// @Failure      504      {object}  apperrors.AppError
// @Router       /api/v1/predict [post]
func (h *Handler) Predict(c *gin.Context) {
	start := time.Now()

	body, ok := h.readBody(c, h.profileSchema)
	if !ok {
		return
	}

	var req PredictRequest
	if err := json.Unmarshal(body, &req); err != nil {
		_ = c.Error(apperrors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	profile, err := prediction.ParseProfile(req.Raw())
	if err != nil {
		_ = c.Error(apperrors.FromPredictionError(err))
		return
	}
	if err := profile.Validate(); err != nil {
		_ = c.Error(apperrors.FromPredictionError(err))
		return
	}

	ctx := c.Request.Context()
	if err := ctx.Err(); err != nil {
		_ = c.Error(apperrors.ToAppError(err))
		return
	}

	var (
		result prediction.PredictionResult
		recs   []prediction.Recommendation
	)
	_ = monitoring.TraceFunction(ctx, h.tracer, "prediction.score", func(ctx context.Context) error {
		result = h.scorer.Score(profile)
		recs = prediction.Recommend(result)

		_, span := h.tracer.Start(ctx, "prediction.result",
			attribute.Int("prediction.confidence", result.Confidence),
			attribute.String("prediction.risk_level", string(result.RiskLevel)),
			attribute.Int("prediction.recommendations", len(recs)),
		)
		span.End()
		return nil
	})

	requestID := c.GetString(apperrors.RequestIDKey)
	h.metrics.RecordPrediction(string(result.RiskLevel), result.Confidence, result.WillBeLayedOff)
	h.logger.PredictionLogger(requestID, string(result.RiskLevel), result.Confidence, result.WillBeLayedOff, len(recs), time.Since(start))

	c.JSON(http.StatusOK, PredictResponse{
		RequestID:       requestID,
		Prediction:      result,
		Recommendations: recs,
		Outcome:         result.Outcome(),
		Summary:         result.RiskLevel.Summary(),
	})
}

// Recommend godoc
// @Summary      Recommendations for a prediction
// @Description  Derives retention recommendations from a previously returned prediction. Responses are cached.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        prediction  body      prediction.PredictionResult  true  "Prediction result"
// @Success      200         {object}  RecommendResponse
// @Failure      400         {object}  apperrors.AppError
// @Router       /api/v1/recommend [post]
func (h *Handler) Recommend(c *gin.Context) {
	body, ok := h.readBody(c, h.predictionSchema)
	if !ok {
		return
	}

	var result prediction.PredictionResult
	if err := json.Unmarshal(body, &result); err != nil {
		_ = c.Error(apperrors.NewValidationError("Invalid request body", err.Error()))
		return
	}

	c.JSON(http.StatusOK, RecommendResponse{Recommendations: prediction.Recommend(result)})
}

// Reference godoc
// @Summary      Input reference data
// @Description  Lists the departments, overtime frequencies, performance ratings and factor names the scorer understands.
// @Tags         reference
// @Produce      json
// @Success      200  {object}  ReferenceResponse
// @Router       /api/v1/reference [get]
func (h *Handler) Reference(c *gin.Context) {
	c.JSON(http.StatusOK, ReferenceResponse{
		Departments:         prediction.Departments(),
		OvertimeFrequencies: prediction.OvertimeFrequencies(),
		PerformanceRatings:  prediction.PerformanceRatings(),
		Factors:             prediction.FactorNames(),
	})
}

// Health godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
		Redis:     "disabled",
	}

	if h.redis != nil && h.redis.IsEnabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.redis.HealthCheck(ctx); err != nil {
			resp.Status = "degraded"
			resp.Redis = "unavailable"
		} else {
			resp.Redis = "ok"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// readBody reads and schema-checks the request body. On failure it records
// the error on the context and returns false.
func (h *Handler) readBody(c *gin.Context, schema *Schema) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(apperrors.NewAppError(apperrors.NewValidationError("Request body too large").Builder,
				apperrors.CategoryValidation, http.StatusRequestEntityTooLarge))
			return nil, false
		}
		_ = c.Error(apperrors.NewValidationError("Unable to read request body", err.Error()))
		return nil, false
	}

	fields, err := schema.Validate(body)
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("Request body must be a JSON object", err.Error()))
		return nil, false
	}
	switch len(fields) {
	case 0:
		return body, true
	case 1:
		for field, msg := range fields {
			appErr := apperrors.NewFieldValidationError(field, msg)
			appErr.Message = msg
			_ = c.Error(appErr)
		}
	default:
		_ = c.Error(apperrors.NewValidationErrorWithMap(fields))
	}
	return nil, false
}
