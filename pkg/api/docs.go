package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/replays/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decode an .osr file and return its metadata, optionally with frames",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["replays"],
                "summary": "Decode a replay",
                "parameters": [
                    {"description": ".osr file", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}},
                    {"type": "integer", "description": "Number of frames to include, -1 for all", "name": "events", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DecodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replays/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Encode a JSON replay into the .osr format",
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "tags": ["replays"],
                "summary": "Encode a replay",
                "parameters": [
                    {"description": "Replay", "name": "replay", "in": "body", "required": true, "schema": {"$ref": "#/definitions/replay.Replay"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/replay-data": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Parse the frames of an API replay payload (base64 LZMA by default)",
                "consumes": ["text/plain", "application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["replays"],
                "summary": "Parse replay data",
                "parameters": [
                    {"type": "string", "description": "Game mode (std, taiko, catch, mania)", "name": "mode", "in": "query", "required": true},
                    {"type": "boolean", "description": "Payload is already base64-decoded", "name": "decoded", "in": "query"},
                    {"type": "boolean", "description": "Payload is already decompressed", "name": "decompressed", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ReplayDataResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "List archive entries, oldest first, optionally filtered by player or beatmap hash",
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "List archived replays",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of entries (default 100, 0 for all)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Only replays by this player", "name": "player", "in": "query"},
                    {"type": "string", "description": "Only replays of this beatmap hash", "name": "beatmap", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ArchiveListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Store an .osr file in the archive",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Archive a replay",
                "parameters": [
                    {"description": ".osr file", "name": "body", "in": "body", "required": true, "schema": {"type": "string", "format": "binary"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ArchivePutResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the metadata of an archived replay",
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Get an archived replay",
                "parameters": [
                    {"type": "string", "description": "Archive ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/storage.Entry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Delete an archived replay",
                "parameters": [
                    {"type": "string", "description": "Archive ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/archive/{id}/raw": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Download the .osr file of an archived replay",
                "produces": ["application/octet-stream"],
                "tags": ["archive"],
                "summary": "Download an archived replay",
                "parameters": [
                    {"type": "string", "description": "Archive ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["archive"],
                "summary": "Archive statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/storage.Stats"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "api.DecodeResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"type": "object"}},
                "life_bar": {"type": "array", "items": {"$ref": "#/definitions/replay.LifeBarState"}},
                "summary": {"$ref": "#/definitions/replay.Summary"}
            }
        },
        "api.ReplayDataResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "events": {"type": "array", "items": {"type": "object"}},
                "mode": {"type": "string"}
            }
        },
        "api.ArchivePutResponse": {
            "type": "object",
            "properties": {
                "duplicate": {"type": "boolean"},
                "id": {"type": "string"}
            }
        },
        "api.ArchiveListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/storage.Entry"}}
            }
        },
        "replay.LifeBarState": {
            "type": "object",
            "properties": {
                "life": {"type": "number"},
                "time": {"type": "integer"}
            }
        },
        "replay.Replay": {
            "type": "object",
            "properties": {
                "mode": {"type": "integer"},
                "game_version": {"type": "integer"},
                "beatmap_hash": {"type": "string"},
                "username": {"type": "string"},
                "replay_hash": {"type": "string"},
                "count_300": {"type": "integer"},
                "count_100": {"type": "integer"},
                "count_50": {"type": "integer"},
                "count_geki": {"type": "integer"},
                "count_katu": {"type": "integer"},
                "count_miss": {"type": "integer"},
                "score": {"type": "integer"},
                "max_combo": {"type": "integer"},
                "perfect": {"type": "boolean"},
                "mods": {"type": "integer"},
                "life_bar": {"type": "array", "items": {"$ref": "#/definitions/replay.LifeBarState"}},
                "timestamp": {"type": "string"},
                "events": {"type": "array", "items": {"type": "object"}},
                "replay_id": {"type": "integer"},
                "rng_seed": {"type": "integer"}
            }
        },
        "replay.Summary": {
            "type": "object",
            "properties": {
                "mode": {"type": "string"},
                "username": {"type": "string"},
                "beatmap_hash": {"type": "string"},
                "replay_hash": {"type": "string"},
                "score": {"type": "integer"},
                "max_combo": {"type": "integer"},
                "mods": {"type": "string"},
                "mods_value": {"type": "integer"},
                "timestamp": {"type": "string"},
                "replay_id": {"type": "integer"},
                "events": {"type": "integer"},
                "life_bar_states": {"type": "integer"},
                "duration_ms": {"type": "integer"}
            }
        },
        "storage.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created": {"type": "string"},
                "size": {"type": "integer"},
                "summary": {"$ref": "#/definitions/replay.Summary"}
            }
        },
        "storage.Stats": {
            "type": "object",
            "properties": {
                "replays": {"type": "integer"},
                "bytes": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:9200",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "osrkit REST API",
	Description:      "REST API for decoding, encoding and archiving osu! replays.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
