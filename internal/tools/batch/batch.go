package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DefaultConcurrency bounds the number of items processed at once.
const DefaultConcurrency = 4

// MaxItems is the largest batch a single call accepts.
const MaxItems = 25

// Result is the outcome for one ID.
type Result[T any] struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Value  *T     `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Results aggregates the outcomes of a batch.
type Results[T any] struct {
	Total      int         `json:"total"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Results    []Result[T] `json:"results"`
}

// ParseStringOrArray accepts a tool argument that is either a string or an
// array of strings. Duplicate IDs are dropped, keeping the first occurrence.
func ParseStringOrArray(param any, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var ids []string
	switch v := param.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		ids = []string{strings.TrimSpace(v)}
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		seen := make(map[string]bool, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
			}
			if !seen[s] {
				seen[s] = true
				ids = append(ids, s)
			}
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	if len(ids) > MaxItems {
		return nil, fmt.Errorf("%s accepts at most %d items, got %d", paramName, MaxItems, len(ids))
	}
	return ids, nil
}

// Process calls fn for every id with at most concurrency calls in flight.
// A concurrency below one uses DefaultConcurrency.
func Process[T any](ctx context.Context, ids []string, concurrency int, fn func(ctx context.Context, id string) (T, error)) Results[T] {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result[T], len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			v, err := fn(gctx, id)
			if err != nil {
				results[i] = Result[T]{ID: id, Status: StatusError, Error: err.Error()}
				return nil
			}
			results[i] = Result[T]{ID: id, Status: StatusSuccess, Value: &v}
			return nil
		})
	}
	_ = g.Wait()

	out := Results[T]{Total: len(results), Results: results}
	for _, r := range results {
		if r.Status == StatusSuccess {
			out.Successful++
		} else {
			out.Failed++
		}
	}
	return out
}

// JSON renders the results as indented JSON.
func (r Results[T]) JSON() (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode batch results: %w", err)
	}
	return string(b), nil
}
