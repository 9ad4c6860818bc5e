// Package store persists option blobs keyed by option name. Values are
// encoded as JSON when saved; sanitizers upstream never encode.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-publishing/pkg/model"
)

// Store loads and saves one option blob per key. Load returns an empty map
// when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context, key string) (model.Values, error)
	Save(ctx context.Context, key string, values model.Values) error
}

// Encode serializes values for storage.
func Encode(values model.Values) ([]byte, error) {
	if values == nil {
		values = model.Values{}
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("store: encode values: %w", err)
	}
	return payload, nil
}

// Decode parses a stored blob. An empty payload decodes to an empty map.
func Decode(payload []byte) (model.Values, error) {
	values := model.Values{}
	if len(payload) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(payload, &values); err != nil {
		return nil, fmt.Errorf("store: decode values: %w", err)
	}
	return values, nil
}
