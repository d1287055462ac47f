package storage

import "encoding/json"

// Documents are stored as JSON so entries stay inspectable and the schema
// can grow without a migration step.
func encodeDoc(v any) ([]byte, error) {
	return json.Marshal(v)
}

func decodeDoc(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
