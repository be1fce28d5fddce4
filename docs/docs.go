// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with `swag init` after changing handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/store/items": {
            "get": {
                "tags": ["Storefront"],
                "summary": "List active items",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "number", "name": "min_price", "in": "query"},
                    {"type": "number", "name": "max_price", "in": "query"},
                    {"type": "boolean", "name": "in_stock", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["newest", "price_asc", "price_desc", "popular", "rating"]},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/store/items/{slug}": {
            "get": {
                "tags": ["Storefront"],
                "summary": "Item detail",
                "parameters": [{"type": "string", "name": "slug", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "404": {"description": "Not Found"}}
            }
        },
        "/store/categories": {
            "get": {
                "tags": ["Storefront"],
                "summary": "Category tree",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/cart/activity": {
            "post": {
                "tags": ["Cart"],
                "summary": "Record a cart snapshot",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CartActivityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/cart/quote": {
            "post": {
                "tags": ["Cart"],
                "summary": "Price a cart",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/orders": {
            "post": {
                "tags": ["Orders"],
                "summary": "Place an order",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "409": {"description": "Insufficient stock"}, "422": {"description": "Invalid item or coupon"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login with email and password",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Banned"}}
            }
        },
        "/admin/reports/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin - Reports"],
                "summary": "Sales overview",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        }
    },
    "definitions": {
        "models.ApiResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "boolean"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "meta": {"$ref": "#/definitions/models.Pagination"},
                "requested_entity": {"type": "string"}
            }
        },
        "models.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer", "example": 1},
                "limit": {"type": "integer", "example": 20},
                "total": {"type": "integer", "example": 42},
                "total_pages": {"type": "integer", "example": 3}
            }
        },
        "models.CartActivityRequest": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "customer": {"type": "object"},
                "zone": {"type": "string", "example": "inside_dhaka"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Online Bazar API",
	Description:      "Storefront and admin back office for Online Bazar.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
