// Package clients provides the instrumented HTTP client used to reach
// upstream services.
package clients

import "errors"

// ErrRequestFailed wraps transport-level failures: DNS, connection refused,
// TLS, timeouts and cancellations. The ACL layer translates it into a
// domain error.
var ErrRequestFailed = errors.New("upstream request failed")
