package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "description": "REST API for the lanscan network scanner.",
    "title": "lanscan API",
    "license": {
      "name": "MIT",
      "url": "https://opensource.org/licenses/MIT"
    },
    "version": "1.0"
  },
  "host": "localhost:8080",
  "basePath": "/api/v1",
  "schemes": [
    "http"
  ],
  "paths": {
    "/scans": {
      "post": {
        "consumes": [
          "application/json"
        ],
        "produces": [
          "application/json"
        ],
        "summary": "Create a new scan task",
        "description": "Submits an ARP discovery pass, optionally followed by a SYN port scan, and queues it for background processing.",
        "operationId": "createScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "description": "Scan request parameters",
            "name": "scanRequest",
            "in": "body",
            "required": true,
            "schema": {
              "$ref": "#/definitions/CreateScanRequest"
            }
          }
        ],
        "responses": {
          "202": {
            "description": "Scan task accepted",
            "schema": {
              "$ref": "#/definitions/AcceptedResponse"
            }
          },
          "400": {
            "description": "Invalid request payload",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "429": {
            "description": "Rate limit exceeded",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Internal server error",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    },
    "/scans/{id}": {
      "get": {
        "produces": [
          "application/json"
        ],
        "summary": "Get scan status and results",
        "description": "Retrieves the complete details of a scan task by its ID.",
        "operationId": "getScan",
        "tags": [
          "Scans"
        ],
        "security": [
          {
            "ApiKeyAuth": []
          }
        ],
        "parameters": [
          {
            "type": "string",
            "description": "Scan task ID (UUID)",
            "name": "id",
            "in": "path",
            "required": true
          }
        ],
        "responses": {
          "200": {
            "description": "Full scan task object with discovered devices",
            "schema": {
              "$ref": "#/definitions/ScanTask"
            }
          },
          "404": {
            "description": "Task not found",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "401": {
            "description": "Unauthorized",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "429": {
            "description": "Rate limit exceeded",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          },
          "500": {
            "description": "Internal server error",
            "schema": {
              "$ref": "#/definitions/ErrorResponse"
            }
          }
        }
      }
    }
  },
  "securityDefinitions": {
    "ApiKeyAuth": {
      "type": "apiKey",
      "name": "Authorization",
      "in": "header"
    }
  },
  "definitions": {
    "AcceptedResponse": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "example": "pending"
        }
      },
      "additionalProperties": false
    },
    "CreateScanRequest": {
      "type": "object",
      "required": [
        "ip_targets"
      ],
      "properties": {
        "ip_targets": {
          "type": "array",
          "items": {
            "type": "string"
          },
          "example": [
            "192.168.1.0/24"
          ]
        },
        "port_targets": {
          "type": "array",
          "items": {
            "type": "string"
          },
          "example": [
            "22",
            "80",
            "443"
          ]
        },
        "arp_only": {
          "type": "boolean",
          "example": false
        },
        "include_vendor": {
          "type": "boolean",
          "example": true
        },
        "include_hostnames": {
          "type": "boolean",
          "example": true
        }
      },
      "additionalProperties": false
    },
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {
          "type": "string",
          "example": "failed to queue task"
        }
      },
      "additionalProperties": false
    },
    "Port": {
      "type": "object",
      "properties": {
        "id": {
          "type": "integer",
          "format": "int32",
          "example": 80
        },
        "service": {
          "type": "string",
          "example": "http"
        }
      },
      "additionalProperties": false
    },
    "Device": {
      "type": "object",
      "properties": {
        "ipv4": {
          "type": "string",
          "example": "192.168.1.42"
        },
        "mac": {
          "type": "string",
          "example": "aa:bb:cc:dd:ee:ff"
        },
        "hostname": {
          "type": "string"
        },
        "vendor": {
          "type": "string"
        },
        "open_ports": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/Port"
          }
        }
      },
      "additionalProperties": false
    },
    "ScanTask": {
      "type": "object",
      "properties": {
        "id": {
          "type": "string",
          "example": "a3f5c62e-1234-4f72-a84a-1c2d3e4f5678"
        },
        "status": {
          "type": "string",
          "example": "pending"
        },
        "ip_targets": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "port_targets": {
          "type": "array",
          "items": {
            "type": "string"
          }
        },
        "arp_only": {
          "type": "boolean"
        },
        "include_vendor": {
          "type": "boolean"
        },
        "include_hostnames": {
          "type": "boolean"
        },
        "devices": {
          "type": "array",
          "items": {
            "$ref": "#/definitions/Device"
          }
        },
        "created_at": {
          "type": "string",
          "format": "date-time",
          "example": "2026-01-02T15:04:05Z"
        },
        "completed_at": {
          "type": "string",
          "format": "date-time"
        },
        "error": {
          "type": "string",
          "example": "failed to queue task"
        }
      },
      "additionalProperties": false
    }
  }
}
`

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

type swaggerDoc struct{}

func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}
