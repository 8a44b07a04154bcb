package bridge

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/coinforge/btcbridge"
	"github.com/coinforge/btcbridge/core"
	"github.com/coinforge/btcbridge/errors"
)

// statusFromError maps a native error onto the status contract. Typed
// domain errors keep their discriminant so the consumer side can
// rebuild the exact variant; lifecycle and decode errors map onto
// their dedicated status codes.
func statusFromError(op string, err error) btcbridge.Status {
	var amountErr *core.AmountError
	if stderrors.As(err, &amountErr) {
		return failure(btcbridge.StatusDomainError, DomainAmount, uint8(amountErr.Code), amountErr.Error())
	}
	var feeErr *core.FeeRateError
	if stderrors.As(err, &feeErr) {
		return failure(btcbridge.StatusDomainError, DomainFeeRate, uint8(feeErr.Code), feeErr.Error())
	}
	var txidErr *core.TxidError
	if stderrors.As(err, &txidErr) {
		return failure(btcbridge.StatusDomainError, DomainTxid, uint8(txidErr.Code), txidErr.Error())
	}
	var netErr *core.NetworkError
	if stderrors.As(err, &netErr) {
		return failure(btcbridge.StatusDomainError, DomainNetwork, 0, netErr.Error())
	}

	var bErr *errors.Error
	if stderrors.As(err, &bErr) {
		switch bErr.Kind {
		case errors.KindUseAfterFree:
			return failure(btcbridge.StatusUseAfterFree, DomainGeneric, 0, bErr.Error())
		case errors.KindDoubleFree:
			return failure(btcbridge.StatusDoubleFree, DomainGeneric, 0, bErr.Error())
		case errors.KindTruncated, errors.KindInvalidUTF8, errors.KindInvalidOrdinal,
			errors.KindOverflow, errors.KindTrailingData, errors.KindInvalidData,
			errors.KindInvalidInput, errors.KindInvalidHandle, errors.KindTypeMismatch:
			return failure(btcbridge.StatusDecodeError, DomainGeneric, 0, bErr.Error())
		case errors.KindClosed, errors.KindInternalFault:
			return failure(btcbridge.StatusInternalFault, DomainGeneric, 0, bErr.Error())
		}
	}

	Logger().Error("unclassified error at boundary",
		zap.String("op", op),
		zap.Error(err))
	return failure(btcbridge.StatusInternalFault, DomainGeneric, 0, err.Error())
}

// recoverTo converts a panic into an internal fault status. Installed
// with defer at the top of every exported call so no panic can unwind
// across the boundary.
func recoverTo(op string, st *btcbridge.Status) {
	r := recover()
	if r == nil {
		return
	}
	Logger().Error("panic recovered at boundary",
		zap.String("op", op),
		zap.Any("panic", r))
	fault := errors.InternalFault(op, r)
	*st = failure(btcbridge.StatusInternalFault, DomainGeneric, 0, fault.Error())
}
