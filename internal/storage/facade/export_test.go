package facade

// reset clears the process-wide store so each test can exercise Open.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	active = nil
}
