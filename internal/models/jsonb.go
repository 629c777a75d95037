package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// marshalJSONB encodes v for a JSONB column. Nil slices are stored as an empty array.
func marshalJSONB(v interface{}, isNil bool) (driver.Value, error) {
	if isNil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding jsonb column: %w", err)
	}
	return b, nil
}

// scanJSONB decodes a JSONB column value into dest.
func scanJSONB(src interface{}, dest interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
