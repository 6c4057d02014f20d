package repositories

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonObject stores a caller-defined object as JSON text. Numbers are read
// back as json.Number so large integers keep their exact value.
type jsonObject map[string]interface{}

// Value implements driver.Valuer
func (o jsonObject) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]interface{}(o))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (o *jsonObject) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into a JSON object", value)
	}
	if len(data) == 0 {
		*o = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out map[string]interface{}
	if err := decoder.Decode(&out); err != nil {
		return fmt.Errorf("failed to decode JSON object: %w", err)
	}
	*o = out
	return nil
}
