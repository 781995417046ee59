// Package docs registers the OpenAPI document served under /swagger.
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
        "/users": {
            "get": {
                "description": "List every user that has loaded sleep data",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.UserResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}": {
            "get": {
                "description": "Get a user's details by their UUID",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/sleeps": {
            "get": {
                "description": "Paginated nights of a user. Optional score range and bedtime date range filters.",
                "produces": ["application/json"],
                "tags": ["sleeps"],
                "summary": "List normalized nights",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User UUID", "name": "userId", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "minimum": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 50, "minimum": 1, "maximum": 1000, "description": "Results per page", "name": "limit", "in": "query"},
                    {"enum": ["date", "score", "duration_min", "bedtime_full"], "type": "string", "default": "date", "description": "Sort column", "name": "sortBy", "in": "query"},
                    {"enum": ["asc", "desc"], "type": "string", "default": "asc", "description": "Sort direction", "name": "sortOrder", "in": "query"},
                    {"type": "number", "description": "Minimum score", "name": "minScore", "in": "query"},
                    {"type": "number", "description": "Maximum score", "name": "maxScore", "in": "query"},
                    {"type": "string", "format": "date", "description": "First bedtime day (YYYY-MM-DD)", "name": "dateFrom", "in": "query"},
                    {"type": "string", "format": "date", "description": "Last bedtime day (YYYY-MM-DD)", "name": "dateTo", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Nights with pagination", "schema": {"$ref": "#/definitions/domain.SleepRecordListResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "422": {"description": "Validation error", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/sleeps/kpi": {
            "get": {
                "description": "Window KPIs (linear means, circular mean bed/wake times) against the previous window of the same length, with per-night outlier flags.",
                "produces": ["application/json"],
                "tags": ["kpi"],
                "summary": "KPI comparison",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User UUID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "format": "date", "description": "First day of the window, requires to", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "description": "Last day of the window, requires from", "name": "to", "in": "query"},
                    {"type": "integer", "minimum": 1, "maximum": 366, "description": "Trailing window length ending today", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.KPIComparison"}},
                    "400": {"description": "Invalid user ID or window", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "422": {"description": "Validation error", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/sleeps/insights": {
            "get": {
                "description": "Same window selection as the KPI endpoint. Requires OPENAI_API_KEY.",
                "produces": ["application/json"],
                "tags": ["kpi"],
                "summary": "LLM insights over the KPI comparison",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User UUID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "format": "date", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "name": "to", "in": "query"},
                    {"type": "integer", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.InsightsResponse"}},
                    "502": {"description": "LLM request or response failed", "schema": {"$ref": "#/definitions/problem.Problem"}},
                    "503": {"description": "LLM not configured", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        },
        "/users/{userId}/sleeps/{sleepId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sleeps"],
                "summary": "Get one night",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "User UUID", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "format": "uuid", "description": "Sleep record UUID", "name": "sleepId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.SleepRecord"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/problem.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "domain.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "firstname": {"type": "string", "example": "Ada"},
                "lastname": {"type": "string", "example": "Lovelace"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "domain.NormalizedSleepRecord": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "11/05/2025"},
                "duration": {"type": "string", "example": "7h30"},
                "duration_min": {"type": "integer", "example": 450},
                "mean_hr": {"type": "number", "example": 54},
                "bedtime": {"type": "string", "example": "10:59 PM"},
                "waketime": {"type": "string", "example": "07:56 AM"},
                "score": {"type": "number", "example": 82},
                "bedtime_full": {"type": "string", "example": "2025-05-11T22:59:00"},
                "waketime_full": {"type": "string", "example": "2025-05-12T07:56:00"}
            }
        },
        "domain.SleepRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "user_id": {"type": "string", "format": "uuid"},
                "date": {"type": "string", "example": "11/05/2025"},
                "duration": {"type": "string", "example": "7h30"},
                "duration_min": {"type": "integer", "example": 450},
                "mean_hr": {"type": "number", "example": 54},
                "bedtime": {"type": "string", "example": "10:59 PM"},
                "waketime": {"type": "string", "example": "07:56 AM"},
                "score": {"type": "number", "example": 82},
                "bedtime_full": {"type": "string", "example": "2025-05-11T22:59:00"},
                "waketime_full": {"type": "string", "example": "2025-05-12T07:56:00"}
            }
        },
        "domain.PaginationResponse": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "example": 1},
                "limit": {"type": "integer", "example": 50},
                "total": {"type": "integer", "example": 120},
                "has_more": {"type": "boolean", "example": true}
            }
        },
        "domain.SleepRecordListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.SleepRecord"}},
                "pagination": {"$ref": "#/definitions/domain.PaginationResponse"}
            }
        },
        "domain.WindowKPI": {
            "type": "object",
            "properties": {
                "from": {"type": "string", "format": "date-time"},
                "to": {"type": "string", "format": "date-time"},
                "count": {"type": "integer", "example": 28},
                "mean_duration_min": {"type": "number", "example": 452.5},
                "mean_hr": {"type": "number", "example": 55.2},
                "mean_score": {"type": "number", "example": 80.1},
                "mean_bedtime_min": {"type": "number", "example": 1395.4},
                "mean_bedtime": {"type": "string", "example": "23:15"},
                "mean_waketime_min": {"type": "number", "example": 452},
                "mean_waketime": {"type": "string", "example": "07:32"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/domain.NormalizedSleepRecord"}}
            }
        },
        "domain.KPIDeltas": {
            "type": "object",
            "properties": {
                "duration_pct": {"type": "number", "example": 4.2},
                "hr_pct": {"type": "number", "example": -1.5},
                "score_pct": {"type": "number", "example": 2},
                "bedtime_pct": {"type": "number", "example": -1.4},
                "waketime_pct": {"type": "number", "example": 0.7}
            }
        },
        "domain.MetricAssessment": {
            "type": "object",
            "properties": {
                "deviation_pct": {"type": "number", "example": -33.3},
                "bad": {"type": "boolean", "example": true}
            }
        },
        "domain.RecordAssessment": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "11/05/2025"},
                "duration": {"$ref": "#/definitions/domain.MetricAssessment"},
                "hr": {"$ref": "#/definitions/domain.MetricAssessment"},
                "score": {"$ref": "#/definitions/domain.MetricAssessment"}
            }
        },
        "domain.KPIComparison": {
            "type": "object",
            "properties": {
                "current": {"$ref": "#/definitions/domain.WindowKPI"},
                "previous": {"$ref": "#/definitions/domain.WindowKPI"},
                "deltas": {"$ref": "#/definitions/domain.KPIDeltas"},
                "assessments": {"type": "array", "items": {"$ref": "#/definitions/domain.RecordAssessment"}}
            }
        },
        "domain.LLMInsightsOutput": {
            "type": "object",
            "properties": {
                "summary": {"type": "string"},
                "observations": {"type": "array", "items": {"type": "string"}},
                "guidance": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.InsightsResponse": {
            "type": "object",
            "properties": {
                "comparison": {"$ref": "#/definitions/domain.KPIComparison"},
                "insights": {"$ref": "#/definitions/domain.LLMInsightsOutput"},
                "trace_id": {"type": "string"}
            }
        },
        "problem.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "problem.Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/problem.FieldError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Nightlog API",
	Description:      "Normalized sleep-tracker nights and window KPIs with circular bed and wake time means.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
