package core

import (
	"fmt"
	"math"
)

// FeeRate is a fee rate in satoshis per 1000 weight units.
// One virtual byte is four weight units, so 1 sat/vB = 250 sat/kwu.
type FeeRate struct {
	satKWU uint64
}

const kwuPerVB = 250

// FeeRateErrorCode is the stable discriminant for fee rate failures.
type FeeRateErrorCode uint8

const (
	FeeRateArithmeticOverflow FeeRateErrorCode = iota
)

func (c FeeRateErrorCode) String() string {
	if c == FeeRateArithmeticOverflow {
		return "arithmetic_overflow"
	}
	return "unknown"
}

// FeeRateError reports why a fee rate could not be constructed.
type FeeRateError struct {
	Detail string
	Code   FeeRateErrorCode
}

func (e *FeeRateError) Error() string {
	if e.Detail == "" {
		return "fee rate: " + e.Code.String()
	}
	return fmt.Sprintf("fee rate: %s: %s", e.Code, e.Detail)
}

// FeeRateFromSatPerVB converts a sat/vB rate. Fails if the internal sat/kwu
// representation would overflow.
func FeeRateFromSatPerVB(satVB uint64) (FeeRate, error) {
	if satVB > math.MaxUint64/kwuPerVB {
		return FeeRate{}, &FeeRateError{
			Code:   FeeRateArithmeticOverflow,
			Detail: fmt.Sprintf("%d sat/vB", satVB),
		}
	}
	return FeeRate{satKWU: satVB * kwuPerVB}, nil
}

// FeeRateFromSatPerKWU constructs a fee rate directly in sat/kwu.
func FeeRateFromSatPerKWU(satKWU uint64) FeeRate {
	return FeeRate{satKWU: satKWU}
}

// SatPerKWU returns the rate in satoshis per 1000 weight units.
func (f FeeRate) SatPerKWU() uint64 { return f.satKWU }

// SatPerVBCeil returns the rate in sat/vB, rounded up.
func (f FeeRate) SatPerVBCeil() uint64 {
	q, r := f.satKWU/kwuPerVB, f.satKWU%kwuPerVB
	if r > 0 {
		q++
	}
	return q
}

// SatPerVBFloor returns the rate in sat/vB, rounded down.
func (f FeeRate) SatPerVBFloor() uint64 {
	return f.satKWU / kwuPerVB
}

func (f FeeRate) String() string {
	return fmt.Sprintf("%d sat/kwu", f.satKWU)
}
