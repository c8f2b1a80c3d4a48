// Package api holds the HTTP contract of the service: an OpenAPI 3 document
// embedded into the binary, used for request validation and served through
// swagger.
package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	payload string
}

func (d swaggerDoc) ReadDoc() string {
	return d.payload
}

var registerOnce sync.Once

// RegisterSwagger publishes doc as the default swag instance read by the
// swagger UI. swag panics on duplicate names, so only the first call
// registers.
func RegisterSwagger(doc *openapi3.T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{payload: string(payload)})
	})
	return nil
}
