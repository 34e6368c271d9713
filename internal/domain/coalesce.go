package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Int64Ptr returns a pointer to v. Zero is treated as absent and yields nil.
func Int64Ptr(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

// StrPtr returns a pointer to s, or nil when s is empty.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
