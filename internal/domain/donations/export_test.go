package donations

// SetShortTokenGenerator replaces the token source and returns a restore func.
func SetShortTokenGenerator(f func() string) func() {
	prev := newShortToken
	newShortToken = f
	return func() { newShortToken = prev }
}
