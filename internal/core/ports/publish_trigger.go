package ports

// PublishTrigger wakes the outbox publisher outside the periodic sweep.
// Notify must never block: transition use cases fire it right after commit to
// cut delivery latency, and losing a signal is harmless because the periodic
// sweep publishes anything left behind.
type PublishTrigger interface {
	Notify()
}
