// Package docs registers the OpenAPI description served at /swagger.
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
        "/healthz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["public"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "List product categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Category"}}}}
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "category id", "name": "category", "in": "query"},
                    {"type": "boolean", "description": "featured only", "name": "featured", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.ListResponse"}},
                    "404": {"description": "unknown category"}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Get a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Product"}},
                    "404": {"description": "not found"}
                }
            }
        },
        "/checkout": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Place an order",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "phone", "in": "formData", "required": true},
                    {"type": "string", "name": "address", "in": "formData", "required": true},
                    {"type": "string", "enum": ["COD", "Card"], "name": "paymentMethod", "in": "formData", "required": true},
                    {"type": "string", "description": "JSON array of cart items", "name": "cartItems", "in": "formData", "required": true},
                    {"type": "string", "name": "cartTotal", "in": "formData"},
                    {"type": "file", "name": "paymentProof", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid form data"},
                    "500": {"description": "storage failure"}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["public"],
                "summary": "Get an order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "404": {"description": "not found"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Start an admin session",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/admin/logout": {
            "post": {
                "tags": ["admin"],
                "summary": "End the admin session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Order statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Stats"}}}
            }
        },
        "/admin/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all products",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a product",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid form data"}}
            }
        },
        "/admin/products/{id}": {
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid form data"}, "404": {"description": "not found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a product",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "not found"}}
            }
        },
        "/admin/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List all orders",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/orders/{id}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change order and payment status",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/admin.StatusUpdate"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid status"}, "404": {"description": "not found"}, "409": {"description": "transition not allowed"}}
            }
        },
        "/admin/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Current admin account",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change admin credentials",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/admin.SettingsInput"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid form data"}}
            }
        }
    },
    "definitions": {
        "catalog.Image": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "imageHint": {"type": "string"}
            }
        },
        "catalog.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "image": {"$ref": "#/definitions/catalog.Image"}
            }
        },
        "catalog.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "string", "example": "250.00"},
                "stock": {"type": "integer"},
                "category": {"type": "string"},
                "expiryDate": {"type": "string"},
                "isFeatured": {"type": "boolean"},
                "image": {"$ref": "#/definitions/catalog.Image"}
            }
        },
        "catalog.ListResponse": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "featured": {"type": "boolean"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/catalog.Product"}}
            }
        },
        "order.CartItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "quantity": {"type": "integer"},
                "image": {"$ref": "#/definitions/catalog.Image"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "ORD-001"},
                "customerName": {"type": "string"},
                "customerPhone": {"type": "string"},
                "customerAddress": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.CartItem"}},
                "total": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["COD", "Card"]},
                "paymentStatus": {"type": "string", "enum": ["Pending Payment - COD", "Paid", "Pending Verification"]},
                "orderStatus": {"type": "string", "enum": ["Pending", "Confirmed", "Delivered", "Cancelled"]},
                "paymentProofUrl": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "order.Stats": {
            "type": "object",
            "properties": {
                "totalOrders": {"type": "integer"},
                "pendingCOD": {"type": "integer"},
                "paidOrders": {"type": "integer"}
            }
        },
        "admin.StatusUpdate": {
            "type": "object",
            "properties": {
                "orderStatus": {"type": "string", "example": "Confirmed"},
                "paymentStatus": {"type": "string", "example": "Paid"}
            }
        },
        "admin.SettingsInput": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
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
	Title:            "Khattak MART storefront API",
	Description:      "Catalog, checkout and admin back office for the Khattak MART grocery store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
