package domain

// QueryError — a storage-layer fault surfaced to the transport boundary.
// It carries the underlying message so the caller can render it; any
// other failure class is reported as a generic internal error instead.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return "query failed"
	}
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps a storage fault. Returns nil for a nil error.
func NewQueryError(err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Err: err}
}
