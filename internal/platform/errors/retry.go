package errors

// Retry semantics for the critique pipeline: only the parse family is worth
// re-asking the model about. Rate limits and transport failures are terminal
// for the current request.

// IsParse reports whether err belongs to the parse error family
func IsParse(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeInvalidStructure, ErrorCodeDecode, ErrorCodeSchema:
		return true
	}
	return false
}

// Retryable reports whether the error is retryable within one request
func Retryable(err error) bool { return IsParse(err) }
