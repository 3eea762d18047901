package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process publishers hand over the
// struct itself or a pointer to it; anything else takes a JSON round trip,
// which is also how a typed payload becomes a flat map for the journal.
func DecodePayload[T any](input interface{}) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf(ErrMsgNilPayload, result)
		}
		return *v, nil
	case nil:
		return result, fmt.Errorf(ErrMsgNilPayload, result)
	}
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
