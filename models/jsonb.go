package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB a PostgreSQL jsonb oszloptípusa. Tesztben (sqlite) stringként jön
// vissza, ezért mindkét formát elfogadjuk.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return jsonbValue(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	case nil:
		*j = nil
		return nil
	default:
		return errors.New("unsupported source type for JSONB")
	}
}

// jsonbValue és jsonbScan a tipizált jsonb oszlopok közös kódja. Az érték
// szövegként megy ki: az sqlite a blobot nem JSON-ként kezeli, a szövegen
// viszont a ->> operátor is működik.
func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonbScan(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	default:
		return errors.New("unsupported source type for jsonb column")
	}
}
