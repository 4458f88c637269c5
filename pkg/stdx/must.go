package stdx

// Must0 panics if the provided error is not nil. It is meant for call sites
// where an error is not expected and should terminate the program if it
// occurs anyway.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v when err is nil and panics otherwise. It collapses the
// common (value, error) return shape at call sites that treat the error as
// fatal, such as program initialization.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
