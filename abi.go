package btcbridge

// StatusCode tags the outcome of a boundary call.
// Codes are part of the wire contract and never renumbered.
type StatusCode int32

const (
	StatusOK            StatusCode = 0
	StatusDomainError   StatusCode = 1 // failure surfaced by the domain core
	StatusDecodeError   StatusCode = 2 // malformed cross-boundary data
	StatusUseAfterFree  StatusCode = 3 // operation on a released handle
	StatusDoubleFree    StatusCode = 4 // second destroy of the same handle
	StatusInternalFault StatusCode = 5 // recovered panic inside the core
)

var statusNames = [...]string{
	StatusOK:            "ok",
	StatusDomainError:   "domain_error",
	StatusDecodeError:   "decode_error",
	StatusUseAfterFree:  "use_after_free",
	StatusDoubleFree:    "double_free",
	StatusInternalFault: "internal_fault",
}

func (c StatusCode) String() string {
	if int(c) < len(statusNames) && c >= 0 {
		return statusNames[c]
	}
	return "unknown"
}

// Status is the out-value every flat boundary function returns alongside its
// result. A non-OK status carries a marshalled error payload; the result
// values accompanying it are undefined and must not be read.
type Status struct {
	Payload []byte
	Code    StatusCode
}

// OK reports whether the call succeeded.
func (s Status) OK() bool { return s.Code == StatusOK }
