// Package swagger registers the OpenAPI document served on /swagger/*.
// Keep it in step with the @Summary/@Router annotations of the feature handlers.
package swagger

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
        "/buckets": {
            "get": {
                "description": "List buckets and whether each carries an abort-incomplete-multipart-upload rule.",
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "List Buckets",
                "responses": {
                    "200": {
                        "description": "Bucket statuses",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/buckets.Status"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/buckets/{name}/lifecycle": {
            "get": {
                "description": "Get the current lifecycle rules of a bucket.",
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "Get Lifecycle",
                "parameters": [
                    {"type": "string", "description": "Bucket name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "Lifecycle configuration",
                        "schema": {"$ref": "#/definitions/storage.Configuration"}
                    },
                    "404": {
                        "description": "Bucket not found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/buckets/{name}/reconcile": {
            "post": {
                "description": "Ensure a bucket has an abort-incomplete-multipart-upload rule.",
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "Reconcile Bucket",
                "parameters": [
                    {"type": "string", "description": "Bucket name", "name": "name", "in": "path", "required": true},
                    {"type": "boolean", "description": "Report without writing", "name": "dry_run", "in": "query"},
                    {"type": "integer", "description": "DaysAfterInitiation for a created rule", "name": "retention_days", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Reconcile result",
                        "schema": {"$ref": "#/definitions/reconcile.Result"}
                    },
                    "400": {
                        "description": "Invalid parameters",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "404": {
                        "description": "Bucket not found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "Transient failure",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/events/bucket-created": {
            "post": {
                "description": "Accepts an EventBridge CloudTrail CreateBucket event and ensures the new bucket has an MPU abort rule.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Bucket Created Event",
                "parameters": [
                    {"description": "EventBridge envelope", "name": "event", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {
                        "description": "Reconcile result",
                        "schema": {"$ref": "#/definitions/reconcile.Result"}
                    },
                    "400": {
                        "description": "Malformed event",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "404": {
                        "description": "Bucket not found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "503": {
                        "description": "Transient failure",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/history": {
            "get": {
                "description": "List persisted reconcile outcomes, newest first.",
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Reconcile History",
                "parameters": [
                    {"type": "string", "description": "Only records for this bucket", "name": "bucket", "in": "query"},
                    {"type": "integer", "description": "Maximum number of records (default 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Audit records",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/audit.Record"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "audit.Record": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "bucket": {"type": "string"},
                "created_at": {"type": "string"},
                "dry_run": {"type": "boolean"},
                "duration_ms": {"type": "integer"},
                "error": {"type": "string"},
                "error_kind": {"type": "string"},
                "id": {"type": "string"},
                "retention_days": {"type": "integer"},
                "rule_id": {"type": "string"},
                "trigger": {"type": "string"}
            }
        },
        "buckets.Status": {
            "type": "object",
            "properties": {
                "days_after_initiation": {"type": "integer"},
                "error": {"type": "string"},
                "name": {"type": "string"},
                "rule_id": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "reconcile.Result": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "bucket": {"type": "string"},
                "dry_run": {"type": "boolean"},
                "existing_rule_id": {"type": "string"},
                "proposed_rule": {"$ref": "#/definitions/storage.Rule"},
                "retention_days": {"type": "integer"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/storage.Rule"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Warning"}}
            }
        },
        "reconcile.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "rule_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "storage.Configuration": {
            "type": "object",
            "properties": {
                "rules": {"type": "array", "items": {"$ref": "#/definitions/storage.Rule"}}
            }
        },
        "storage.Rule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MPU Janitor API",
	Description:      "Keeps an abort-incomplete-multipart-upload lifecycle rule on every bucket.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
