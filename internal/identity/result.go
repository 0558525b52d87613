package identity

// Fixed failure codes reported by the user store.
const (
	ErrCodeUserCreateFailed = "USER_CREATE_FAILED"
	ErrCodeUserUpdateFailed = "USER_UPDATE_FAILED"
	ErrCodeUserDeleteFailed = "USER_DELETE_FAILED"
)

// ResultError describes a single store failure.
type ResultError struct {
	Code        string
	Description string
}

// Result is the structured outcome of a store mutation. Storage errors
// never escape the store; they surface here instead.
type Result struct {
	Succeeded bool
	Errors    []ResultError
}

// Success is the shared successful result.
var Success = Result{Succeeded: true}

// Failed builds a failed result from the given errors.
func Failed(errs ...ResultError) Result {
	return Result{Succeeded: false, Errors: errs}
}

// Descriptions returns the description of every carried error.
func (r Result) Descriptions() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Description)
	}
	return out
}
