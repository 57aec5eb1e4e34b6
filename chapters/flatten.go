package chapters

import "sort"

// Flatten converts a nested chapter structure into a plain list of
// chapter file names, in document order for sequences. Mapping values
// are visited in sorted key order; scalar values other than strings are
// skipped.
func Flatten(v any) []string {
	var out []string
	flattenInto(v, &out)
	return out
}

func flattenInto(v any, out *[]string) {
	switch t := v.(type) {
	case string:
		*out = append(*out, t)
	case []any:
		for _, elem := range t {
			flattenInto(elem, out)
		}
	case map[string]any:
		for _, key := range sortedKeys(t) {
			flattenInto(t[key], out)
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
