package driver

// Safe conversion helpers for values returned by the graph store. Bolt
// returns integers as int64 and embedding lists as []any of float64; these
// helpers normalize both without panicking on missing or mistyped values.

// AsString safely converts a row value to string.
// Returns the string and true if successful, empty string and false otherwise.
func AsString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// AsInt64 safely converts a row value to int64, accepting the integer
// widths a driver may hand back.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	}
	return 0, false
}

// AsFloat64 safely converts a row value to float64. Integer values are
// widened, matching how the store returns whole-number prices.
func AsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// AsFloat32Slice converts a stored embedding value to []float32.
// Bolt lists arrive as []any with float64 elements; nil and non-list
// values yield nil so a missing embedding stays missing.
func AsFloat32Slice(v any) []float32 {
	switch list := v.(type) {
	case nil:
		return nil
	case []float32:
		return list
	case []float64:
		out := make([]float32, len(list))
		for i, f := range list {
			out[i] = float32(f)
		}
		return out
	case []any:
		out := make([]float32, 0, len(list))
		for _, item := range list {
			f, ok := AsFloat64(item)
			if !ok {
				return nil
			}
			out = append(out, float32(f))
		}
		return out
	}
	return nil
}
