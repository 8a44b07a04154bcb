package binding

import (
	"github.com/coinforge/btcbridge"
	"github.com/coinforge/btcbridge/bridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/errors"
)

// DomainError is a native domain failure rebuilt on the consumer side.
// Domain and Code together identify the exact variant the core raised;
// two failures compare distinct whenever those differ.
type DomainError struct {
	Message string
	Domain  bridge.ErrorDomain
	Code    uint8
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches another DomainError with the same domain and code, so
// errors.Is can be used against a sentinel without the message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

// AmountCode reports the amount discriminant when this is an amount error.
func (e *DomainError) AmountCode() (core.AmountErrorCode, bool) {
	if e.Domain != bridge.DomainAmount {
		return 0, false
	}
	return core.AmountErrorCode(e.Code), true
}

// FeeRateCode reports the fee rate discriminant when this is a fee rate error.
func (e *DomainError) FeeRateCode() (core.FeeRateErrorCode, bool) {
	if e.Domain != bridge.DomainFeeRate {
		return 0, false
	}
	return core.FeeRateErrorCode(e.Code), true
}

// TxidCode reports the txid discriminant when this is a txid error.
func (e *DomainError) TxidCode() (core.TxidErrorCode, bool) {
	if e.Domain != bridge.DomainTxid {
		return 0, false
	}
	return core.TxidErrorCode(e.Code), true
}

// statusErr rebuilds the typed error carried by a failure status.
func statusErr(st btcbridge.Status) error {
	if st.OK() {
		return nil
	}
	p, err := bridge.DecodeErrorPayload(st.Payload)
	if err != nil {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Cause(err).
			Detail("malformed status payload for code %d", st.Code).
			Build()
	}
	switch st.Code {
	case btcbridge.StatusDomainError:
		return &DomainError{Domain: p.Domain, Code: p.Code, Message: p.Message}
	case btcbridge.StatusUseAfterFree:
		return errors.New(errors.PhaseHandle, errors.KindUseAfterFree).
			Detail("%s", p.Message).
			Build()
	case btcbridge.StatusDoubleFree:
		return errors.New(errors.PhaseHandle, errors.KindDoubleFree).
			Detail("%s", p.Message).
			Build()
	case btcbridge.StatusDecodeError:
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("%s", p.Message).
			Build()
	default:
		return errors.New(errors.PhaseCall, errors.KindInternalFault).
			Detail("%s", p.Message).
			Build()
	}
}
