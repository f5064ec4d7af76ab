// Package docs holds the swaggo-generated API description served at
// /swagger/*. Hand-maintained here instead of produced by `swag init`,
// since this module's build never shells out to the swag CLI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "wanderoute API",
        "description": "pedestrian walking-route engine: snapping, shortest path, penalized and novelty-seeking routing, and walked-street history",
        "contact": {},
        "version": "1.0"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/snap": {
            "post": {
                "tags": ["navigation"],
                "summary": "snap a raw GPS point onto the nearest street-graph node",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/rest.CoordinateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.SnapResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/route/shortest": {
            "post": {
                "tags": ["navigation"],
                "summary": "shortest walking route between two points",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/rest.RouteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/datastructure.RouteResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/route/penalized": {
            "post": {
                "tags": ["navigation"],
                "summary": "shortest route that avoids already-walked streets where possible",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/rest.PenalizedRouteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/datastructure.RouteResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/route/novelty": {
            "post": {
                "tags": ["navigation"],
                "summary": "a route that favors streets not yet walked, within an overhead budget",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/rest.NoveltyRouteRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/datastructure.RouteResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/walked/record": {
            "post": {
                "tags": ["walkhistory"],
                "summary": "mark a street segment as walked",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/rest.WalkedEdgeRequest"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        },
        "/walked/nearby": {
            "get": {
                "tags": ["walkhistory"],
                "summary": "list previously walked streets near a point",
                "parameters": [
                    {"in": "query", "name": "lat", "type": "number", "required": true},
                    {"in": "query", "name": "lon", "type": "number", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/rest.NearbyWalkedStreetsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/rest.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/rest.ErrResponse"}}
                }
            }
        }
    },
    "definitions": {
        "rest.CoordinateRequest": {"type": "object", "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}},
        "rest.SnapResponse": {"type": "object", "properties": {"nodeId": {"type": "integer"}, "distanceMeters": {"type": "number"}}},
        "rest.RouteRequest": {"type": "object", "properties": {"sourceLat": {"type": "number"}, "sourceLon": {"type": "number"}, "targetLat": {"type": "number"}, "targetLon": {"type": "number"}}},
        "rest.PenalizedRouteRequest": {"type": "object", "properties": {"sourceLat": {"type": "number"}, "sourceLon": {"type": "number"}, "targetLat": {"type": "number"}, "targetLon": {"type": "number"}, "penalty": {"type": "number"}}},
        "rest.NoveltyRouteRequest": {"type": "object", "properties": {"sourceLat": {"type": "number"}, "sourceLon": {"type": "number"}, "targetLat": {"type": "number"}, "targetLon": {"type": "number"}, "minNovelty": {"type": "number"}, "maxOverhead": {"type": "number"}}},
        "rest.WalkedEdgeRequest": {"type": "object", "properties": {"sourceLat": {"type": "number"}, "sourceLon": {"type": "number"}, "targetLat": {"type": "number"}, "targetLon": {"type": "number"}}},
        "rest.NearbyWalkedStreetsResponse": {"type": "object", "properties": {"edges": {"type": "array", "items": {"$ref": "#/definitions/datastructure.EdgeKey"}}}},
        "rest.ErrResponse": {"type": "object", "properties": {"status": {"type": "string"}, "error": {"type": "string"}, "validation": {"type": "array", "items": {"type": "string"}}}},
        "datastructure.EdgeKey": {"type": "object", "properties": {"A": {"type": "integer"}, "B": {"type": "integer"}}},
        "datastructure.RouteResult": {
            "type": "object",
            "properties": {
                "path": {"type": "array", "items": {"type": "integer"}},
                "edges": {"type": "array", "items": {"$ref": "#/definitions/datastructure.EdgeKey"}},
                "distance": {"type": "number"},
                "shortestDistance": {"type": "number"},
                "novelty": {"type": "number"},
                "overhead": {"type": "number"},
                "instructions": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "wanderoute API",
	Description:      "pedestrian walking-route engine: snapping, shortest path, penalized and novelty-seeking routing, and walked-street history",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
