// Package errs holds the error types shared by the domain and the adapters.
//
// Every type unwraps to one sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound), so callers branch with errors.Is
// and keep the detailed message for logs:
//
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // re-prompt, the user typed something we cannot parse
//	}
package errs
