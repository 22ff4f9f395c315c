package req

import (
	"encoding/json"
	"io"
)

// Decode - читает JSON тело запроса в T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}
