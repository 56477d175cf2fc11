package domain

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// Float64OrZero dereferences p, returning 0 for nil.
func Float64OrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// IntOrZero dereferences p, returning 0 for nil.
func IntOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
