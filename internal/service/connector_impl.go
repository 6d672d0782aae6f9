package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/compozy/prwriter/internal/domain"
	"github.com/compozy/prwriter/internal/repository"
)

// DocumentLoader returns the service description the connector resolves
// operations against.
type DocumentLoader func(ctx context.Context) (*OpenAPIDocument, error)

// openAPIConnector is the implementation of the ServiceConnector interface.
type openAPIConnector struct {
	load   DocumentLoader
	client repository.GithubRepository

	once   sync.Once
	doc    *OpenAPIDocument
	docErr error
}

// NewOpenAPIConnector creates a connector that resolves operations from doc and
// sends them through the GitHub REST client, which carries base URL and auth.
func NewOpenAPIConnector(doc *OpenAPIDocument, client repository.GithubRepository) ServiceConnector {
	return NewLazyOpenAPIConnector(func(context.Context) (*OpenAPIDocument, error) {
		return doc, nil
	}, client)
}

// NewLazyOpenAPIConnector defers loading the service description until the
// first Invoke. The loaded document, or the load error, is reused afterwards.
func NewLazyOpenAPIConnector(load DocumentLoader, client repository.GithubRepository) ServiceConnector {
	return &openAPIConnector{load: load, client: client}
}

// Invoke resolves payload.Name and issues the request built from its arguments.
func (c *openAPIConnector) Invoke(ctx context.Context, payload domain.InvocationPayload) (*domain.APIResponse, error) {
	doc, err := c.document(ctx)
	if err != nil {
		return nil, err
	}
	op, err := doc.FindOperation(payload.Name)
	if err != nil {
		return nil, err
	}
	args, err := payload.DecodeArguments()
	if err != nil {
		return nil, err
	}
	path, err := buildPath(op, args)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Call(ctx, op.Method, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", op.ID, err)
	}
	return resp, nil
}

func (c *openAPIConnector) document(ctx context.Context) (*OpenAPIDocument, error) {
	c.once.Do(func() {
		c.doc, c.docErr = c.load(ctx)
		if c.docErr != nil {
			c.docErr = fmt.Errorf("failed to load service description: %w", c.docErr)
		}
	})
	return c.doc, c.docErr
}

// buildPath substitutes path parameters and appends query parameters.
func buildPath(op *Operation, args map[string]any) (string, error) {
	path := op.Path
	query := url.Values{}
	for _, p := range op.Parameters {
		value, ok := args[p.Name]
		if !ok || value == nil {
			if p.Required {
				return "", fmt.Errorf("missing required parameter %q for %s", p.Name, op.ID)
			}
			continue
		}
		str := formatArgument(value)
		switch p.In {
		case "path":
			path = strings.ReplaceAll(path, "{"+p.Name+"}", escapePathValue(str))
		case "query":
			query.Set(p.Name, str)
		}
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("unresolved path template %s for %s", path, op.ID)
	}
	if len(query) == 0 {
		return path, nil
	}
	return path + "?" + query.Encode(), nil
}

// escapePathValue escapes each "/"-separated segment so characters such as
// '#' and '%' in ref names reach the server intact.
func escapePathValue(value string) string {
	segments := strings.Split(value, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func formatArgument(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; integers are the common case
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, formatArgument(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}
