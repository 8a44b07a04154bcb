package descriptor

import (
	"github.com/coinforge/btcbridge/errors"
)

// WireKind identifies the wire representation of a boundary type.
type WireKind uint8

const (
	KindBool WireKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindF64
	KindString // u32 length prefix, UTF-8
	KindBytes  // u32 length prefix, raw
	KindEnum   // u8 pinned ordinal
	KindRecord // fields in declared order, no padding
	KindHandle // u64 opaque handle
)

var wireKindNames = [...]string{
	KindBool:   "bool",
	KindU8:     "u8",
	KindU16:    "u16",
	KindU32:    "u32",
	KindU64:    "u64",
	KindF64:    "f64",
	KindString: "string",
	KindBytes:  "bytes",
	KindEnum:   "enum",
	KindRecord: "record",
	KindHandle: "handle",
}

func (k WireKind) String() string {
	if int(k) < len(wireKindNames) {
		return wireKindNames[k]
	}
	return "unknown"
}

// Variant is one enum member with its pinned ordinal.
type Variant struct {
	Name    string
	Ordinal uint8
}

// EnumDesc enumerates all variants of an enum-like type exhaustively.
type EnumDesc struct {
	Variants []Variant
}

// Field is one record member. Type names another descriptor type.
type Field struct {
	Name string
	Type string
}

// RecordDesc lists record fields in wire order.
type RecordDesc struct {
	Fields []Field
}

// TypeDesc describes one type visible across the boundary.
type TypeDesc struct {
	Enum   *EnumDesc
	Record *RecordDesc
	Name   string
	Kind   WireKind
}

// PassMode states who owns a parameter's memory during a call.
type PassMode uint8

const (
	// ByValue parameters are copied across the boundary.
	ByValue PassMode = iota
	// Borrowed parameters are read in place; the caller retains ownership
	// and the callee must not hold the reference past the call.
	Borrowed
)

func (m PassMode) String() string {
	if m == Borrowed {
		return "borrow"
	}
	return "value"
}

// Param is one function parameter.
type Param struct {
	Name string
	Type string
	Mode PassMode
}

// FuncDesc describes one flat boundary function. Result and Errors are empty
// when the function returns nothing or cannot fail.
type FuncDesc struct {
	Name   string
	Result string
	Errors []string
	Params []Param
}

// Descriptor is the complete boundary declaration.
type Descriptor struct {
	Types []TypeDesc
	Funcs []FuncDesc
}

// Type looks up a type by name.
func (d *Descriptor) Type(name string) (*TypeDesc, bool) {
	for i := range d.Types {
		if d.Types[i].Name == name {
			return &d.Types[i], true
		}
	}
	return nil, false
}

// Func looks up a function by name.
func (d *Descriptor) Func(name string) (*FuncDesc, bool) {
	for i := range d.Funcs {
		if d.Funcs[i].Name == name {
			return &d.Funcs[i], true
		}
	}
	return nil, false
}

// Ordinal returns the pinned ordinal for an enum variant.
func (d *Descriptor) Ordinal(enumType, variant string) (uint8, bool) {
	td, ok := d.Type(enumType)
	if !ok || td.Enum == nil {
		return 0, false
	}
	for _, v := range td.Enum.Variants {
		if v.Name == variant {
			return v.Ordinal, true
		}
	}
	return 0, false
}

// Validate checks the structural invariants of the descriptor.
func (d *Descriptor) Validate() error {
	typeNames := make(map[string]WireKind, len(d.Types))
	for _, td := range d.Types {
		if td.Name == "" {
			return errors.InvalidData(errors.PhaseValidate, nil, "type with empty name")
		}
		if _, dup := typeNames[td.Name]; dup {
			return errors.InvalidData(errors.PhaseValidate, []string{td.Name}, "duplicate type name")
		}
		typeNames[td.Name] = td.Kind

		if (td.Kind == KindEnum) != (td.Enum != nil) {
			return errors.InvalidData(errors.PhaseValidate, []string{td.Name},
				"enum kind and enum table must match")
		}
		if (td.Kind == KindRecord) != (td.Record != nil) {
			return errors.InvalidData(errors.PhaseValidate, []string{td.Name},
				"record kind and field table must match")
		}

		if td.Enum != nil {
			if err := validateEnum(td.Name, td.Enum); err != nil {
				return err
			}
		}
	}

	// Record fields may reference types declared later, so resolve after
	// the full type table is known.
	for _, td := range d.Types {
		if td.Record == nil {
			continue
		}
		seen := make(map[string]struct{}, len(td.Record.Fields))
		for _, f := range td.Record.Fields {
			if _, dup := seen[f.Name]; dup {
				return errors.InvalidData(errors.PhaseValidate, []string{td.Name, f.Name},
					"duplicate field name")
			}
			seen[f.Name] = struct{}{}
			if _, ok := typeNames[f.Type]; !ok {
				return errors.NotFound(errors.PhaseValidate, "field type", f.Type)
			}
		}
	}

	funcNames := make(map[string]struct{}, len(d.Funcs))
	for _, fd := range d.Funcs {
		if fd.Name == "" {
			return errors.InvalidData(errors.PhaseValidate, nil, "function with empty name")
		}
		if _, dup := funcNames[fd.Name]; dup {
			return errors.InvalidData(errors.PhaseValidate, []string{fd.Name}, "duplicate function name")
		}
		funcNames[fd.Name] = struct{}{}

		for _, p := range fd.Params {
			if _, ok := typeNames[p.Type]; !ok {
				return errors.NotFound(errors.PhaseValidate, "parameter type", p.Type)
			}
		}
		if fd.Result != "" {
			if _, ok := typeNames[fd.Result]; !ok {
				return errors.NotFound(errors.PhaseValidate, "result type", fd.Result)
			}
		}
	}

	return nil
}

func validateEnum(name string, e *EnumDesc) error {
	if len(e.Variants) == 0 {
		return errors.InvalidData(errors.PhaseValidate, []string{name}, "enum with no variants")
	}
	names := make(map[string]struct{}, len(e.Variants))
	seen := make([]bool, len(e.Variants))
	for _, v := range e.Variants {
		if _, dup := names[v.Name]; dup {
			return errors.InvalidData(errors.PhaseValidate, []string{name, v.Name},
				"duplicate variant name")
		}
		names[v.Name] = struct{}{}
		if int(v.Ordinal) >= len(e.Variants) || seen[v.Ordinal] {
			return errors.InvalidData(errors.PhaseValidate, []string{name, v.Name},
				"ordinals must be contiguous from zero and unique")
		}
		seen[v.Ordinal] = true
	}
	return nil
}
