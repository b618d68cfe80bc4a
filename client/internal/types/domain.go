package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Record is an opaque decoded JSON object (a booking or a user).
// The server owns its shape; the client passes it through untouched.
type Record map[string]any

// AsRecord returns v as a Record when v was decoded from a JSON object.
// Single-item replies are returned as decoded, so they may be any JSON value.
func AsRecord(v any) (Record, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Record(m), true
}

// String returns the value at key when it is a string.
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}
