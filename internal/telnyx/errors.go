package telnyx

import "fmt"

// ProviderError is any failure reported by or on the way to the
// telephony provider: transport errors, timeouts, and provider-side
// rejections all land here with the vendor detail preserved. The caller
// decides whether to resubmit; nothing in this package retries.
type ProviderError struct {
	Op         string // which API operation failed
	StatusCode int    // zero for transport-level failures
	Detail     string // provider-reported detail, if any
	Err        error  // underlying transport error, if any
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telnyx %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("telnyx %s: %s", e.Op, e.Detail)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure never reached the provider's
// business logic (network error or timeout).
func (e *ProviderError) Transport() bool {
	return e.StatusCode == 0
}
