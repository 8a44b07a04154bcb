package core

import (
	"fmt"
	"math"
	"strconv"
)

// Amount is a monetary amount counted in satoshis.
type Amount struct {
	sat uint64
}

const (
	// SatsPerBTC is the number of satoshis in one bitcoin.
	SatsPerBTC = 100_000_000

	// MaxMoney is the largest representable amount: 21 million bitcoin.
	MaxMoney = 21_000_000 * SatsPerBTC

	// maxInputLen bounds accepted decimal strings. Anything longer cannot
	// name a valid amount and is rejected before digit processing.
	maxInputLen = 50
)

// AmountErrorCode is the stable discriminant for amount failures.
type AmountErrorCode uint8

const (
	AmountOutOfRange AmountErrorCode = iota
	AmountTooPrecise
	AmountMissingDigits
	AmountInputTooLarge
	AmountInvalidCharacter
)

var amountErrorNames = [...]string{
	AmountOutOfRange:       "out_of_range",
	AmountTooPrecise:       "too_precise",
	AmountMissingDigits:    "missing_digits",
	AmountInputTooLarge:    "input_too_large",
	AmountInvalidCharacter: "invalid_character",
}

func (c AmountErrorCode) String() string {
	if int(c) < len(amountErrorNames) {
		return amountErrorNames[c]
	}
	return "unknown"
}

// AmountError reports why an amount could not be constructed.
type AmountError struct {
	Detail string
	Code   AmountErrorCode
}

func (e *AmountError) Error() string {
	if e.Detail == "" {
		return "amount: " + e.Code.String()
	}
	return fmt.Sprintf("amount: %s: %s", e.Code, e.Detail)
}

// AmountFromSat constructs an amount from a satoshi count.
// Values above MaxMoney are representable on the wire but rejected here so
// the core never produces an amount the network could not.
func AmountFromSat(sat uint64) (Amount, error) {
	if sat > MaxMoney {
		return Amount{}, &AmountError{
			Code:   AmountOutOfRange,
			Detail: fmt.Sprintf("%d sat exceeds max money", sat),
		}
	}
	return Amount{sat: sat}, nil
}

// AmountFromBTC converts a floating-point bitcoin quantity.
// The float is formatted to its shortest decimal form and parsed, so
// precision failures are reported exactly as for ParseAmount.
func AmountFromBTC(btc float64) (Amount, error) {
	if math.IsNaN(btc) || math.IsInf(btc, 0) {
		return Amount{}, &AmountError{
			Code:   AmountOutOfRange,
			Detail: "not a finite number",
		}
	}
	return ParseAmount(strconv.FormatFloat(btc, 'f', -1, 64))
}

// ParseAmount parses a decimal bitcoin string, e.g. "0.00015".
// At most eight fractional digits carry value; further nonzero digits are
// below one satoshi and rejected as too precise.
func ParseAmount(s string) (Amount, error) {
	if len(s) == 0 {
		return Amount{}, &AmountError{Code: AmountMissingDigits, Detail: "empty string"}
	}
	if len(s) > maxInputLen {
		return Amount{}, &AmountError{
			Code:   AmountInputTooLarge,
			Detail: fmt.Sprintf("%d characters (limit %d)", len(s), maxInputLen),
		}
	}

	if s[0] == '-' {
		return Amount{}, &AmountError{Code: AmountOutOfRange, Detail: "negative amount"}
	}
	if s[0] == '+' {
		s = s[1:]
	}

	var (
		sat       uint64
		digits    int
		decimals  = -1 // -1 until the point is seen
		seenPoint bool
	)
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
			if seenPoint {
				decimals++
			}
			if seenPoint && decimals > 8 {
				if c != '0' {
					return Amount{}, &AmountError{
						Code:   AmountTooPrecise,
						Detail: "sub-satoshi precision",
					}
				}
				continue
			}
			d := uint64(c - '0')
			if sat > (math.MaxUint64-d)/10 {
				return Amount{}, &AmountError{Code: AmountOutOfRange, Detail: "value overflows"}
			}
			sat = sat*10 + d
		case c == '.':
			if seenPoint {
				return Amount{}, &AmountError{
					Code:   AmountInvalidCharacter,
					Detail: "second decimal point",
				}
			}
			seenPoint = true
			decimals = 0
		default:
			return Amount{}, &AmountError{
				Code:   AmountInvalidCharacter,
				Detail: fmt.Sprintf("character %q", c),
			}
		}
	}
	if digits == 0 {
		return Amount{}, &AmountError{Code: AmountMissingDigits, Detail: "no digits"}
	}

	// Scale up to satoshis for the fractional digits not present.
	missing := 8
	if seenPoint {
		if decimals > 8 {
			decimals = 8
		}
		missing = 8 - decimals
	}
	for i := 0; i < missing; i++ {
		if sat > math.MaxUint64/10 {
			return Amount{}, &AmountError{Code: AmountOutOfRange, Detail: "value overflows"}
		}
		sat *= 10
	}

	return AmountFromSat(sat)
}

// Sat returns the amount in satoshis.
func (a Amount) Sat() uint64 { return a.sat }

// BTC returns the amount as a floating-point bitcoin quantity.
// The conversion is lossy for amounts above 2^53 satoshis.
func (a Amount) BTC() float64 {
	return float64(a.sat) / SatsPerBTC
}

func (a Amount) String() string {
	whole := a.sat / SatsPerBTC
	frac := a.sat % SatsPerBTC
	return fmt.Sprintf("%d.%08d BTC", whole, frac)
}
