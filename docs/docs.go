// Package docs содержит OpenAPI-описание HTTP API,
// которое отдаётся в Swagger UI на /api-docs.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
