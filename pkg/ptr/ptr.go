package ptr

// Ptr returns a pointer to v. Useful for optional struct fields and filters.
func Ptr[T any](v T) *T {
	return &v
}
