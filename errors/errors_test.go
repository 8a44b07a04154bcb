package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindTruncated,
				Path:   []string{"out-point", "txid"},
				Type:   "txid",
				Detail: "need 32 bytes, 7 remain",
			},
			contains: []string{"[decode]", "truncated", "out-point.txid", "txid", "need 32 bytes"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLoad,
				Kind:  KindUnsupportedPlatform,
			},
			contains: []string{"[load]", "unsupported_platform"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseCall,
				Kind:   KindDomain,
				Detail: "amount/out_of_range",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[call]", "domain", "amount/out_of_range", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseCall,
		Kind:  KindDomain,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not walk the cause chain")
	}
}

func TestError_Is(t *testing.T) {
	err := UseAfterFree(0x200000001)

	if !errors.Is(err, &Error{Phase: PhaseHandle, Kind: KindUseAfterFree}) {
		t.Error("expected match on same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseHandle, Kind: KindDoubleFree}) {
		t.Error("unexpected match on different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUseAfterFree}) {
		t.Error("unexpected match on different phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("hex decode failed")
	err := New(PhaseDecode, KindInvalidData).
		Path("txid").
		Type("txid").
		Value("zz").
		Cause(cause).
		Detail("expected %d hex characters", 64).
		Build()

	if err.Phase != PhaseDecode || err.Kind != KindInvalidData {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "expected 64 hex characters" {
		t.Errorf("detail not formatted: %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not attached")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		err   *Error
		phase Phase
		kind  Kind
	}{
		{Truncated(PhaseDecode, nil, 4, 1), PhaseDecode, KindTruncated},
		{InvalidUTF8(PhaseDecode, nil, []byte{0xff, 0xfe}), PhaseDecode, KindInvalidUTF8},
		{InvalidOrdinal(PhaseDecode, nil, 9, "network", 4), PhaseDecode, KindInvalidOrdinal},
		{Overflow(PhaseEncode, nil, uint64(1)<<63, "sat-per-kwu"), PhaseEncode, KindOverflow},
		{TrailingData(nil, 3), PhaseDecode, KindTrailingData},
		{InvalidHandle(1), PhaseHandle, KindInvalidHandle},
		{TypeMismatch(1, "script", "amount"), PhaseHandle, KindTypeMismatch},
		{UseAfterFree(1), PhaseHandle, KindUseAfterFree},
		{DoubleFree(1), PhaseHandle, KindDoubleFree},
		{Domain("amount/too_precise", nil), PhaseCall, KindDomain},
		{InternalFault("script_new", "boom"), PhaseCall, KindInternalFault},
		{UnsupportedPlatform("plan9", "arm"), PhaseLoad, KindUnsupportedPlatform},
		{VersionMismatch("0.1.0", ">=0.3.0"), PhaseLoad, KindVersionMismatch},
		{Closed(PhaseHandle, "handle table"), PhaseHandle, KindClosed},
	}

	for _, tt := range tests {
		if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
			t.Errorf("%s: got phase/kind %s/%s, want %s/%s",
				tt.err.Error(), tt.err.Phase, tt.err.Kind, tt.phase, tt.kind)
		}
		if tt.err.Error() == "" {
			t.Errorf("empty message for %s/%s", tt.phase, tt.kind)
		}
	}
}
