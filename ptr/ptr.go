package ptr

func Float64(f float64) *float64 {
	return &f
}

func String(s string) *string {
	return &s
}

// Deref returns the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
