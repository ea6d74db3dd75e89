// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/predict": {
            "post": {
                "description": "Scores an employee profile and returns the risk assessment with retention recommendations. Numeric fields may be sent as strings or numbers.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prediction"],
                "summary": "Predict layoff risk",
                "parameters": [
                    {
                        "description": "Employee profile",
                        "name": "profile",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.AppError"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/errors.AppError"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.AppError"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/errors.AppError"}}
                }
            }
        },
        "/api/v1/recommend": {
            "post": {
                "description": "Derives retention recommendations from a previously returned prediction. Responses are cached.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prediction"],
                "summary": "Recommendations for a prediction",
                "parameters": [
                    {
                        "description": "Prediction result",
                        "name": "prediction",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/prediction.PredictionResult"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.RecommendResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.AppError"}}
                }
            }
        },
        "/api/v1/reference": {
            "get": {
                "description": "Lists the departments, overtime frequencies, performance ratings and factor names the scorer understands.",
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Input reference data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ReferenceResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "redis": {"type": "string", "example": "disabled"},
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "api.PredictRequest": {
            "type": "object",
            "properties": {
                "age": {"type": "string", "example": "30"},
                "department": {"type": "string", "example": "engineering"},
                "jobRole": {"type": "string", "example": "Software Engineer"},
                "overtime": {"type": "string", "example": "often"},
                "performanceRating": {"type": "string", "example": "5"},
                "salary": {"type": "string", "example": "80000"},
                "yearsAtCompany": {"type": "string", "example": "2"}
            }
        },
        "api.PredictResponse": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "example": "Safe"},
                "prediction": {"$ref": "#/definitions/prediction.PredictionResult"},
                "recommendations": {"type": "array", "items": {"$ref": "#/definitions/prediction.Recommendation"}},
                "requestId": {"type": "string"},
                "summary": {"type": "string"}
            }
        },
        "api.RecommendResponse": {
            "type": "object",
            "properties": {
                "recommendations": {"type": "array", "items": {"$ref": "#/definitions/prediction.Recommendation"}}
            }
        },
        "api.ReferenceResponse": {
            "type": "object",
            "properties": {
                "departments": {"type": "array", "items": {"$ref": "#/definitions/prediction.Choice"}},
                "factors": {"type": "array", "items": {"type": "string"}},
                "overtimeFrequencies": {"type": "array", "items": {"$ref": "#/definitions/prediction.Choice"}},
                "performanceRatings": {"type": "array", "items": {"$ref": "#/definitions/prediction.Choice"}}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "code": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "http_status": {"type": "integer"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "prediction.Choice": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "prediction.Factor": {
            "type": "object",
            "properties": {
                "impact": {"type": "number"},
                "isPositive": {"type": "boolean"},
                "name": {"type": "string"}
            }
        },
        "prediction.PredictionResult": {
            "type": "object",
            "properties": {
                "confidence": {"type": "integer"},
                "factors": {"type": "array", "items": {"$ref": "#/definitions/prediction.Factor"}},
                "riskLevel": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "willBeLayedOff": {"type": "boolean"}
            }
        },
        "prediction.Recommendation": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["Medium", "High", "Critical"]},
                "title": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Layoff-O-Meter API",
	Description:      "Layoff risk scoring and retention recommendations for employee profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
