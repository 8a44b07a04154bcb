package descriptor

// Version of the boundary declaration. Bumped whenever a type or function is
// added; existing ordinals and signatures never change within a major version.
const Version = "0.3.1"

// Handle type names. Each opaque type gets its own destroy function.
const (
	TypeScript  = "script"
	TypeAmount  = "amount"
	TypeFeeRate = "fee-rate"
)

// Bitcoin returns the pinned boundary declaration for the bitcoin core.
//
// The enum ordinals below are the wire contract. They are duplicated in a
// frozen table in bitcoin_test.go; a mismatch there means a silent break for
// every already-compiled consumer.
func Bitcoin() *Descriptor {
	return &Descriptor{
		Types: []TypeDesc{
			{Name: "u8", Kind: KindU8},
			{Name: "u32", Kind: KindU32},
			{Name: "u64", Kind: KindU64},
			{Name: "f64", Kind: KindF64},
			{Name: "string", Kind: KindString},
			{Name: "bytes", Kind: KindBytes},
			{
				Name: "network",
				Kind: KindEnum,
				Enum: &EnumDesc{Variants: []Variant{
					{Name: "bitcoin", Ordinal: 0},
					{Name: "testnet", Ordinal: 1},
					{Name: "testnet4", Ordinal: 2},
					{Name: "signet", Ordinal: 3},
					{Name: "regtest", Ordinal: 4},
				}},
			},
			{
				Name: "script-type",
				Kind: KindEnum,
				Enum: &EnumDesc{Variants: []Variant{
					{Name: "non-standard", Ordinal: 0},
					{Name: "p2pkh", Ordinal: 1},
					{Name: "p2sh", Ordinal: 2},
					{Name: "p2wpkh", Ordinal: 3},
					{Name: "p2wsh", Ordinal: 4},
					{Name: "p2tr", Ordinal: 5},
					{Name: "witness-unknown", Ordinal: 6},
				}},
			},
			// Txid crosses as length-prefixed internal-order bytes; the
			// decoder enforces the 32-byte length.
			{Name: "txid", Kind: KindBytes},
			{
				Name: "out-point",
				Kind: KindRecord,
				Record: &RecordDesc{Fields: []Field{
					{Name: "txid", Type: "txid"},
					{Name: "vout", Type: "u32"},
				}},
			},
			{Name: TypeScript, Kind: KindHandle},
			{Name: TypeAmount, Kind: KindHandle},
			{Name: TypeFeeRate, Kind: KindHandle},
		},
		Funcs: []FuncDesc{
			{
				Name:   "network-parse",
				Params: []Param{{Name: "name", Type: "string", Mode: Borrowed}},
				Result: "network",
				Errors: []string{"network"},
			},
			{
				Name:   "network-name",
				Params: []Param{{Name: "network", Type: "network", Mode: ByValue}},
				Result: "string",
			},
			{
				Name:   "script-new",
				Params: []Param{{Name: "raw", Type: "bytes", Mode: Borrowed}},
				Result: TypeScript,
			},
			{
				Name:   "script-bytes",
				Params: []Param{{Name: "script", Type: TypeScript, Mode: Borrowed}},
				Result: "bytes",
			},
			{
				Name:   "script-type",
				Params: []Param{{Name: "script", Type: TypeScript, Mode: Borrowed}},
				Result: "script-type",
			},
			{
				Name:   "script-destroy",
				Params: []Param{{Name: "script", Type: TypeScript, Mode: ByValue}},
			},
			{
				Name:   "amount-from-sat",
				Params: []Param{{Name: "sat", Type: "u64", Mode: ByValue}},
				Result: TypeAmount,
				Errors: []string{"amount"},
			},
			{
				Name:   "amount-from-btc",
				Params: []Param{{Name: "btc", Type: "f64", Mode: ByValue}},
				Result: TypeAmount,
				Errors: []string{"amount"},
			},
			{
				Name:   "amount-parse",
				Params: []Param{{Name: "text", Type: "string", Mode: Borrowed}},
				Result: TypeAmount,
				Errors: []string{"amount"},
			},
			{
				Name:   "amount-sat",
				Params: []Param{{Name: "amount", Type: TypeAmount, Mode: Borrowed}},
				Result: "u64",
			},
			{
				Name:   "amount-btc",
				Params: []Param{{Name: "amount", Type: TypeAmount, Mode: Borrowed}},
				Result: "f64",
			},
			{
				Name:   "amount-destroy",
				Params: []Param{{Name: "amount", Type: TypeAmount, Mode: ByValue}},
			},
			{
				Name:   "fee-rate-from-sat-per-vb",
				Params: []Param{{Name: "sat-per-vb", Type: "u64", Mode: ByValue}},
				Result: TypeFeeRate,
				Errors: []string{"fee-rate"},
			},
			{
				Name:   "fee-rate-from-sat-per-kwu",
				Params: []Param{{Name: "sat-per-kwu", Type: "u64", Mode: ByValue}},
				Result: TypeFeeRate,
			},
			{
				Name:   "fee-rate-sat-per-vb-ceil",
				Params: []Param{{Name: "fee-rate", Type: TypeFeeRate, Mode: Borrowed}},
				Result: "u64",
			},
			{
				Name:   "fee-rate-sat-per-vb-floor",
				Params: []Param{{Name: "fee-rate", Type: TypeFeeRate, Mode: Borrowed}},
				Result: "u64",
			},
			{
				Name:   "fee-rate-sat-per-kwu",
				Params: []Param{{Name: "fee-rate", Type: TypeFeeRate, Mode: Borrowed}},
				Result: "u64",
			},
			{
				Name:   "fee-rate-destroy",
				Params: []Param{{Name: "fee-rate", Type: TypeFeeRate, Mode: ByValue}},
			},
			{
				Name:   "txid-parse",
				Params: []Param{{Name: "text", Type: "string", Mode: Borrowed}},
				Result: "txid",
				Errors: []string{"txid"},
			},
			{
				Name:   "txid-string",
				Params: []Param{{Name: "txid", Type: "txid", Mode: Borrowed}},
				Result: "string",
				Errors: []string{"txid"},
			},
			{
				Name:   "out-point-string",
				Params: []Param{{Name: "out-point", Type: "out-point", Mode: Borrowed}},
				Result: "string",
				Errors: []string{"txid"},
			},
		},
	}
}
