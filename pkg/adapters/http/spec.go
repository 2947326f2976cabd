package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawOpenAPI []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// rawSpec returns the embedded OpenAPI document.
func rawSpec() []byte {
	return rawOpenAPI
}

// GetSwagger loads and validates the embedded OpenAPI document once.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawOpenAPI)
		if err != nil {
			swaggerErr = fmt.Errorf("failed to load openapi document: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("invalid openapi document: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}
