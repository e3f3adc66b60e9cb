package report

import "encoding/json"

// Pick projects any JSON-encodable value onto the requested top-level keys.
// Keys that are missing are left out. Unencodable input gives an empty map.
func Pick(v any, keys ...string) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if val, ok := m[k]; ok {
			out[k] = val
		}
	}
	return out
}

// PickEach applies Pick to every element, keeping order.
func PickEach[T any](items []T, keys ...string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, Pick(it, keys...))
	}
	return out
}
