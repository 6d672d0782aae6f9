package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed specs/github_compare.json
var defaultCompareSpec []byte

// ErrOperationNotFound is returned when no operation carries the requested operationId.
var ErrOperationNotFound = errors.New("operation not found in service description")

var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// OpenAPIDocument is the subset of an OpenAPI 3 document the connector needs.
type OpenAPIDocument struct {
	OpenAPI string                                `json:"openapi"`
	Info    OpenAPIInfo                           `json:"info"`
	Paths   map[string]map[string]json.RawMessage `json:"paths"`
}

type OpenAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// OpenAPIParameter describes a single operation parameter.
type OpenAPIParameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
}

type openAPIOperation struct {
	OperationID string             `json:"operationId"`
	Parameters  []OpenAPIParameter `json:"parameters"`
}

// Operation is a resolved operation ready to be invoked.
type Operation struct {
	ID         string
	Method     string
	Path       string
	Parameters []OpenAPIParameter
}

// ParseOpenAPIDocument accepts both JSON and YAML documents.
func ParseOpenAPIDocument(data []byte) (*OpenAPIDocument, error) {
	var doc OpenAPIDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse service description: %w", err)
	}
	if len(doc.Paths) == 0 {
		return nil, fmt.Errorf("service description declares no paths")
	}
	return &doc, nil
}

// LoadOpenAPIDocument resolves the service description from location: the
// bundled compare description when empty, an http(s) URL fetched at runtime,
// or a file path.
func LoadOpenAPIDocument(
	ctx context.Context,
	fs afero.Fs,
	client *http.Client,
	location string,
) (*OpenAPIDocument, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case location == "":
		data = defaultCompareSpec
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		data, err = fetchDocument(ctx, client, location)
	default:
		data, err = afero.ReadFile(fs, location)
		if err != nil {
			err = fmt.Errorf("failed to read service description %s: %w", location, err)
		}
	}
	if err != nil {
		return nil, err
	}
	return ParseOpenAPIDocument(data)
}

func fetchDocument(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service description %s: %w", location, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read service description %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch service description %s: status %d", location, resp.StatusCode)
	}
	return data, nil
}

// FindOperation looks up the operation whose operationId equals id.
func (d *OpenAPIDocument) FindOperation(id string) (*Operation, error) {
	paths := make([]string, 0, len(d.Paths))
	for p := range d.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		item := d.Paths[p]
		var shared []OpenAPIParameter
		if raw, ok := item["parameters"]; ok {
			if err := json.Unmarshal(raw, &shared); err != nil {
				return nil, fmt.Errorf("invalid parameters for path %s: %w", p, err)
			}
		}
		for _, method := range httpMethods {
			raw, ok := item[method]
			if !ok {
				continue
			}
			var op openAPIOperation
			if err := json.Unmarshal(raw, &op); err != nil {
				return nil, fmt.Errorf("invalid %s operation for path %s: %w", method, p, err)
			}
			if op.OperationID != id {
				continue
			}
			return &Operation{
				ID:         id,
				Method:     strings.ToUpper(method),
				Path:       p,
				Parameters: mergeParameters(shared, op.Parameters),
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOperationNotFound, id)
}

// mergeParameters lets operation parameters override path-level ones with the same name and location.
func mergeParameters(shared, own []OpenAPIParameter) []OpenAPIParameter {
	merged := make([]OpenAPIParameter, 0, len(shared)+len(own))
	for _, s := range shared {
		overridden := false
		for _, o := range own {
			if o.Name == s.Name && o.In == s.In {
				overridden = true
				break
			}
		}
		if !overridden {
			merged = append(merged, s)
		}
	}
	return append(merged, own...)
}
