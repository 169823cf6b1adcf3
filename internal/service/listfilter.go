package service

import (
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// ValidateFilter checks that a list filter expression compiles. An empty
// expression is valid and means "no filtering".
func ValidateFilter(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

// filterList applies a JMESPath expression to a typed list. The list is
// round-tripped through its JSON form so expressions address the same field
// names the API exposes. A nil or non-list result yields an empty list.
func filterList[T any](items []*T, expr string) ([]*T, error) {
	if strings.TrimSpace(expr) == "" || len(items) == 0 {
		return items, nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode list for filter: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode list for filter: %w", err)
	}

	result, err := jmespath.Search(expr, decoded)
	if err != nil {
		return nil, fmt.Errorf("apply filter %q: %w", expr, err)
	}
	if result == nil {
		return []*T{}, nil
	}

	filteredRaw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode filter result: %w", err)
	}
	var out []*T
	if err := json.Unmarshal(filteredRaw, &out); err != nil {
		return nil, fmt.Errorf("filter %q did not produce a list", expr)
	}
	return out, nil
}
