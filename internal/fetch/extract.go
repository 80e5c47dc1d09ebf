package fetch

import "sort"

// extractItems pulls the item list out of whatever wrapper the API
// decided to use today. Known shapes, in order of preference:
//
//	{"data": [...]}
//	{"data": {"data": [...]}}
//	{"internships": [...]}
//	[...]
//
// and as a last resort the first array-valued key in the response.
func extractItems(payload any) []map[string]any {
	switch v := payload.(type) {
	case nil:
		return nil
	case []any:
		return itemMaps(v)
	case map[string]any:
		if list, ok := v["data"].([]any); ok {
			return itemMaps(list)
		}
		if inner, ok := v["data"].(map[string]any); ok {
			if list, ok := inner["data"].([]any); ok {
				return itemMaps(list)
			}
		}
		if list, ok := v["internships"].([]any); ok {
			return itemMaps(list)
		}
		// fallback: first list inside, scanned in key order so the
		// choice is at least deterministic
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := v[k].([]any); ok {
				return itemMaps(list)
			}
		}
	}
	return nil
}

func itemMaps(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
