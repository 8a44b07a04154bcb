package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // Go value to wire bytes
	PhaseDecode   Phase = "decode"   // wire bytes to Go value
	PhaseCall     Phase = "call"     // crossing the flat call surface
	PhaseHandle   Phase = "handle"   // opaque handle lifecycle
	PhaseLoad     Phase = "load"     // platform artifact location
	PhaseValidate Phase = "validate" // descriptor validation
)

// Kind categorizes the error
type Kind string

const (
	KindTruncated           Kind = "truncated"
	KindInvalidUTF8         Kind = "invalid_utf8"
	KindInvalidOrdinal      Kind = "invalid_ordinal"
	KindOverflow            Kind = "overflow"
	KindTrailingData        Kind = "trailing_data"
	KindInvalidData         Kind = "invalid_data"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidHandle       Kind = "invalid_handle"
	KindTypeMismatch        Kind = "type_mismatch"
	KindUseAfterFree        Kind = "use_after_free"
	KindDoubleFree          Kind = "double_free"
	KindDomain              Kind = "domain"
	KindInternalFault       Kind = "internal_fault"
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindNotFound            Kind = "not_found"
	KindVersionMismatch     Kind = "version_mismatch"
	KindClosed              Kind = "closed"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the boundary type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Truncated creates a decode error for input that ends too early
func Truncated(phase Phase, path []string, need, remain int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, %d remain", need, remain),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// InvalidOrdinal creates an error for an enum discriminant outside the pinned table
func InvalidOrdinal(phase Phase, path []string, ordinal uint32, enumType string, maxValid uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOrdinal,
		Path:   path,
		Type:   enumType,
		Detail: fmt.Sprintf("ordinal %d out of range (max %d)", ordinal, maxValid),
		Value:  ordinal,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Type:   targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// TrailingData creates an error for bytes left over after a complete decode
func TrailingData(path []string, remain int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTrailingData,
		Path:   path,
		Detail: fmt.Sprintf("%d bytes remain after value", remain),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidHandle creates an error for a handle that never existed
func InvalidHandle(handle uint64) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %#x was never allocated", handle),
		Value:  handle,
	}
}

// TypeMismatch creates an error for a handle of the wrong boundary type
func TypeMismatch(handle uint64, want, got string) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindTypeMismatch,
		Type:   want,
		Detail: fmt.Sprintf("handle %#x holds %s", handle, got),
		Value:  handle,
	}
}

// UseAfterFree creates an error for an operation on a released handle
func UseAfterFree(handle uint64) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindUseAfterFree,
		Detail: fmt.Sprintf("handle %#x was already released", handle),
		Value:  handle,
	}
}

// DoubleFree creates an error for a second destroy of the same handle
func DoubleFree(handle uint64) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindDoubleFree,
		Detail: fmt.Sprintf("handle %#x was already destroyed", handle),
		Value:  handle,
	}
}

// Domain wraps a failure surfaced by the domain core, tagged with a stable
// discriminant so distinct failure kinds stay distinguishable
func Domain(discriminant string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindDomain,
		Detail: discriminant,
		Cause:  cause,
	}
}

// InternalFault creates an error for a recovered panic inside the core
func InternalFault(op string, recovered any) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindInternalFault,
		Detail: fmt.Sprintf("panic in %s: %v", op, recovered),
		Value:  recovered,
	}
}

// UnsupportedPlatform creates an error for a missing (OS, architecture) artifact
func UnsupportedPlatform(os, arch string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindUnsupportedPlatform,
		Detail: fmt.Sprintf("no native artifact for %s/%s", os, arch),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// VersionMismatch creates an error for an incompatible artifact version
func VersionMismatch(have, want string) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("artifact version %s does not satisfy %s", have, want),
	}
}

// Closed creates an error for an operation on a closed table or bridge
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// Load creates an artifact loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
