// Package docs registers the OpenAPI document served under /docs.
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
        "/countries/": {
            "get": {
                "description": "Returns the unique countries present in the dataset",
                "produces": ["application/json"],
                "tags": ["Dataset"],
                "summary": "List countries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/regions/": {
            "get": {
                "description": "Returns the unique WHO regions present in the dataset",
                "produces": ["application/json"],
                "tags": ["Dataset"],
                "summary": "List WHO regions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/deaths": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Total deaths",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TotalDeathsResponse"}}
                }
            }
        },
        "/deaths_by_country/{country}": {
            "get": {
                "description": "Unknown countries yield 0",
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Total deaths by country",
                "parameters": [
                    {"type": "string", "description": "Country name (exact match)", "name": "country", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TotalDeathsResponse"}}
                }
            }
        },
        "/deaths_by_region/{region}": {
            "get": {
                "description": "Unknown regions yield 0",
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Total deaths by WHO region",
                "parameters": [
                    {"type": "string", "description": "WHO region code (exact match)", "name": "region", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TotalDeathsResponse"}}
                }
            }
        },
        "/deaths_by_country_year/{country}/{year}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Total deaths by country and year",
                "parameters": [
                    {"type": "string", "description": "Country name (exact match)", "name": "country", "in": "path", "required": true},
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TotalDeathsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/deaths_by_region_year/{region}/{year}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Total deaths by WHO region and year",
                "parameters": [
                    {"type": "string", "description": "WHO region code (exact match)", "name": "region", "in": "path", "required": true},
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.TotalDeathsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/max_deaths/": {
            "get": {
                "description": "The range is inclusive and applies only when both bounds are given",
                "produces": ["application/json"],
                "tags": ["Extremes"],
                "summary": "Country with maximum deaths",
                "parameters": [
                    {"type": "string", "description": "Lower bound (YYYY-MM-DD)", "name": "min_date", "in": "query"},
                    {"type": "string", "description": "Upper bound (YYYY-MM-DD)", "name": "max_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CountryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/min_deaths/": {
            "get": {
                "description": "The range is inclusive and applies only when both bounds are given",
                "produces": ["application/json"],
                "tags": ["Extremes"],
                "summary": "Country with minimum deaths",
                "parameters": [
                    {"type": "string", "description": "Lower bound (YYYY-MM-DD)", "name": "min_date", "in": "query"},
                    {"type": "string", "description": "Upper bound (YYYY-MM-DD)", "name": "max_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CountryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/avg_deaths/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Deaths"],
                "summary": "Average deaths",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.AverageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.AverageResponse": {
            "type": "object",
            "properties": {
                "average": {"type": "number"},
                "success": {"type": "boolean"}
            }
        },
        "http.CountryResponse": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "http.TotalDeathsResponse": {
            "type": "object",
            "properties": {
                "total_deaths": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "covidstat API",
	Description:      "Filter and aggregate queries over WHO COVID-19 case and death statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
