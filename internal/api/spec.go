// Package api serves the OpenAPI document and interactive documentation.
package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed OpenAPI document. The document is loaded
// and validated once.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("failed to load OpenAPI document: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid OpenAPI document: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}
