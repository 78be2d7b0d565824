package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// scanJSON decodes a JSON column. NULL and empty values leave dst untouched.
func scanJSON(value interface{}, dst any) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func valueJSON(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
