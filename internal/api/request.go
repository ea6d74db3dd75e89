package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/layoff-o-meter/internal/prediction"
)

// FormValue accepts a JSON string or number and keeps its text form, so
// "30", 30 and 30.0 all reach the parser the way a form would send them.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*v = FormValue(n.String())
	return nil
}

// PredictRequest is the body of POST /api/v1/predict
type PredictRequest struct {
	Age               FormValue `json:"age" swaggertype:"string" example:"30"`
	Department        string    `json:"department" example:"engineering"`
	JobRole           string    `json:"jobRole" example:"Software Engineer"`
	Salary            FormValue `json:"salary" swaggertype:"string" example:"80000"`
	Overtime          string    `json:"overtime" example:"often"`
	PerformanceRating FormValue `json:"performanceRating" swaggertype:"string" example:"5"`
	YearsAtCompany    FormValue `json:"yearsAtCompany" swaggertype:"string" example:"2"`
}

// Raw converts the request into the parser's input
func (r PredictRequest) Raw() prediction.RawProfile {
	return prediction.RawProfile{
		Age:               string(r.Age),
		Department:        r.Department,
		JobRole:           r.JobRole,
		Salary:            string(r.Salary),
		Overtime:          r.Overtime,
		PerformanceRating: string(r.PerformanceRating),
		YearsAtCompany:    string(r.YearsAtCompany),
	}
}

// PredictResponse is returned by POST /api/v1/predict
type PredictResponse struct {
	RequestID       string                      `json:"requestId"`
	Prediction      prediction.PredictionResult `json:"prediction"`
	Recommendations []prediction.Recommendation `json:"recommendations"`
	Outcome         string                      `json:"outcome" example:"Safe"`
	Summary         string                      `json:"summary"`
}

// RecommendResponse is returned by POST /api/v1/recommend
type RecommendResponse struct {
	Recommendations []prediction.Recommendation `json:"recommendations"`
}

// ReferenceResponse is returned by GET /api/v1/reference
type ReferenceResponse struct {
	Departments         []prediction.Choice `json:"departments"`
	OvertimeFrequencies []prediction.Choice `json:"overtimeFrequencies"`
	PerformanceRatings  []prediction.Choice `json:"performanceRatings"`
	Factors             []string            `json:"factors"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Redis     string `json:"redis" example:"disabled"`
}
