package password

// SetCost swaps the bcrypt cost for the duration of a test.
func SetCost(c int) func() {
	previous := cost
	cost = c

	return func() { cost = previous }
}
