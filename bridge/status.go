package bridge

import (
	"github.com/coinforge/btcbridge"
	"github.com/coinforge/btcbridge/marshal"
)

// ErrorDomain identifies which native type family produced a domain
// error. Ordinals are part of the wire contract and never reordered.
type ErrorDomain uint8

const (
	DomainGeneric ErrorDomain = iota
	DomainAmount
	DomainFeeRate
	DomainTxid
	DomainNetwork
)

var domainNames = [...]string{
	DomainGeneric: "generic",
	DomainAmount:  "amount",
	DomainFeeRate: "fee-rate",
	DomainTxid:    "txid",
	DomainNetwork: "network",
}

func (d ErrorDomain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return "unknown"
}

// ErrorPayload is the decoded form of a failure status payload. The
// wire layout is domain (u8), code (u8), message (string).
type ErrorPayload struct {
	Message string
	Domain  ErrorDomain
	Code    uint8
}

// EncodeErrorPayload renders a failure record into status payload bytes.
func EncodeErrorPayload(domain ErrorDomain, code uint8, message string) []byte {
	e := marshal.NewEncoder()
	defer e.Release()
	e.PutU8(uint8(domain))
	e.PutU8(code)
	if err := e.PutString(message); err != nil {
		// A message is always valid UTF-8 well under the size cap.
		// Fall back to an empty message rather than fail the failure.
		e.Reset()
		e.PutU8(uint8(domain))
		e.PutU8(code)
		_ = e.PutString("")
	}
	return e.Detach()
}

// DecodeErrorPayload parses the payload of a non-OK status.
func DecodeErrorPayload(payload []byte) (ErrorPayload, error) {
	d := marshal.NewDecoder(payload)
	domain, err := d.U8()
	if err != nil {
		return ErrorPayload{}, err
	}
	code, err := d.U8()
	if err != nil {
		return ErrorPayload{}, err
	}
	msg, err := d.String()
	if err != nil {
		return ErrorPayload{}, err
	}
	if err := d.Finish(); err != nil {
		return ErrorPayload{}, err
	}
	return ErrorPayload{Domain: ErrorDomain(domain), Code: code, Message: msg}, nil
}

func failure(code btcbridge.StatusCode, domain ErrorDomain, errCode uint8, message string) btcbridge.Status {
	return btcbridge.Status{
		Code:    code,
		Payload: EncodeErrorPayload(domain, errCode, message),
	}
}

var okStatus = btcbridge.Status{Code: btcbridge.StatusOK}
