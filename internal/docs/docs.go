// Package docs holds the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/refresh": {
            "post": {
                "description": "Rescans the runs directory and records the scores of every evaluation",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Rebuild the run index",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.RefreshResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/runs": {
            "get": {
                "description": "Lists every indexed benchmark run with its mean score per environment",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List benchmark runs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/report.RunSummary"}}}
                }
            }
        },
        "/api/runs/{name}": {
            "get": {
                "description": "Returns the run metadata with every evaluation and its episodes",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get a benchmark run",
                "parameters": [
                    {"type": "string", "description": "Run name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/run.BenchmarkRun"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/scores": {
            "get": {
                "description": "Best and worst score per environment and mean score per run",
                "produces": ["application/json"],
                "tags": ["scores"],
                "summary": "Score report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.Report"}}
                }
            }
        }
    },
    "definitions": {
        "report.EnvSummary": {
            "type": "object",
            "properties": {
                "best": {"$ref": "#/definitions/report.ScoreEntry"},
                "env_id": {"type": "string"},
                "max_timesteps": {"type": "integer"},
                "worst": {"$ref": "#/definitions/report.ScoreEntry"}
            }
        },
        "report.EnvironmentInfo": {
            "type": "object",
            "properties": {
                "arch": {"type": "string"},
                "go_version": {"type": "string"},
                "num_cpu": {"type": "integer"},
                "os": {"type": "string"}
            }
        },
        "report.Report": {
            "type": "object",
            "properties": {
                "envs": {"type": "array", "items": {"$ref": "#/definitions/report.EnvSummary"}},
                "meta": {"$ref": "#/definitions/report.ReportMeta"},
                "runs": {"type": "array", "items": {"$ref": "#/definitions/report.RunSummary"}}
            }
        },
        "report.ReportMeta": {
            "type": "object",
            "properties": {
                "benchmark": {"type": "string"},
                "benchmark_id": {"type": "string"},
                "data_path": {"type": "string"},
                "environment": {"$ref": "#/definitions/report.EnvironmentInfo"},
                "indexed_at": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "report.RunSummary": {
            "type": "object",
            "properties": {
                "commit": {"type": "string"},
                "mean_score": {"type": "number"},
                "name": {"type": "string"},
                "scored_envs": {"type": "integer"},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/report.TaskEntry"}},
                "title": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "report.ScoreEntry": {
            "type": "object",
            "properties": {
                "cached_at": {"type": "string"},
                "run_name": {"type": "string"},
                "score": {"type": "number"}
            }
        },
        "report.TaskEntry": {
            "type": "object",
            "properties": {
                "env_id": {"type": "string"},
                "evaluations": {"type": "integer"},
                "normalized": {"type": "number"},
                "score": {"type": "number"},
                "scored": {"type": "boolean"}
            }
        },
        "router.RefreshResponse": {
            "type": "object",
            "properties": {
                "benchmark_id": {"type": "string"},
                "indexed_at": {"type": "string"},
                "runs": {"type": "integer"}
            }
        },
        "run.BenchmarkRun": {
            "type": "object",
            "properties": {
                "command": {"type": "string"},
                "commit": {"type": "string"},
                "name": {"type": "string"},
                "repository": {"type": "string"},
                "task_runs": {"type": "array", "items": {"$ref": "#/definitions/run.TaskRun"}},
                "title": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "run.Evaluation": {
            "type": "object",
            "properties": {
                "data_sources": {"type": "array", "items": {"type": "integer"}},
                "env_id": {"type": "string"},
                "episode_lengths": {"type": "array", "items": {"type": "integer"}},
                "episode_rewards": {"type": "array", "items": {"type": "number"}},
                "episode_types": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "string"},
                "initial_reset_timestamps": {"type": "array", "items": {"type": "number"}},
                "score": {"type": "number"},
                "timestamps": {"type": "array", "items": {"type": "number"}}
            }
        },
        "run.TaskRun": {
            "type": "object",
            "properties": {
                "benchmark_id": {"type": "string"},
                "env_id": {"type": "string"},
                "evaluations": {"type": "array", "items": {"$ref": "#/definitions/run.Evaluation"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Benchmark Viewer API",
	Description:      "Browse reinforcement-learning benchmark runs, their scores and learning curves",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
