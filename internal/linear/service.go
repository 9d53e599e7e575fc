package linear

import (
	"encoding/json"
	"errors"
	"fmt"

	"linearmcp/internal/client"
)

var ErrNotFound = errors.New("not found")

func unmarshalData[T any](resp *client.Response) (*T, error) {
	var out T
	if len(resp.Data) == 0 {
		return nil, errors.New("empty response data")
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("decoding response data: %w", err)
	}
	return &out, nil
}

func checkSuccess(success bool, action string) error {
	if !success {
		return fmt.Errorf("%s reported failure", action)
	}
	return nil
}
