package stdx

// Zero returns the zero value for the type T. It reads better than declaring
// a throwaway variable when a generic function needs to return "nothing"
// alongside an error.
func Zero[T any]() T {
	var zero T
	return zero
}
