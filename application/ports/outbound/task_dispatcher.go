package outbound

// TaskDispatcher schedules a function onto a background worker.
// Satisfied by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
