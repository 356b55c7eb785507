package dto

import _ "embed"

// OpenAPI - контракт HTTP API консоли. Схемы названы по типам пакета.
//
//go:embed openapi.yaml
var OpenAPI []byte
