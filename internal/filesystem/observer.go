package filesystem

// Observer records filesystem metrics. Implementations are provided by the
// metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// op is one of "stat", "readfile", "readdir", "write".
	ObserveRetryAttempt(op string)
	ObserveRetrySuccess(op string)
	ObserveRetryFailure(op string)

	// op is one of "create", "write", "remove", "rename".
	ObserveFolderEvent(op string)
}

// defaultObserver is the package-level observer set at startup.
// If nil, metric recording is silently skipped (safe for tests).
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

type noopObserver struct{}

func (noopObserver) ObserveRetryAttempt(string) {}
func (noopObserver) ObserveRetrySuccess(string) {}
func (noopObserver) ObserveRetryFailure(string) {}
func (noopObserver) ObserveFolderEvent(string)  {}

// observe is a nil-safe accessor for the package-level observer.
func observe() Observer {
	if defaultObserver == nil {
		return noopObserver{}
	}
	return defaultObserver
}
