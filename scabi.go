// Package scabi encodes and decodes values exchanged with smart contracts,
// following the MultiversX binary serialization format and driven by a
// contract's interface definition (custom structs and enums, and endpoints
// with typed inputs and outputs).
//
// # Basic Usage
//
// Build an Abi from a definition, then encode arguments and decode results:
//
//	definition := scabi.MustParseDefinition(adderABIJSON)
//	adder := scabi.MustNewAbi(definition)
//
//	// Arguments become one binary part each
//	parts, err := adder.EncodeEndpointInputParameters("add", []any{7})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or the textual call data: "add@07"
//	data, err := adder.EncodeCallData("add", []any{7})
//
//	// Results come back as native Go values
//	results, err := adder.DecodeEndpointOutputParameters("getSum", returnedParts)
//
// # Contract Calls
//
// A Contract binds an Abi to a deployed address. Invoke imports the
// arguments once and returns an immutable Call:
//
//	adderAddr, _ := scabi.ParseAddress("erd1qqqqqqqqqqqqqpgq...")
//	contract := scabi.NewContract(adderAddr, adder)
//	call := contract.MustInvoke("add", 7)
//	data, err := call.Data() // "add@07"
//
// # Value Kinds
//
// Every type expression resolves to one of a fixed set of value kinds:
//
//   - Scalars: BoolValue, U8Value..U64Value, I8Value..I64Value, BigUIntValue,
//     BigIntValue, BytesValue, StringValue, AddressValue
//
//   - Composites: StructValue, EnumValue, TupleValue, ListValue, OptionValue
//
//   - Multi-values, only at the outer level of an endpoint's parameter list:
//     OptionalValue, VariadicValues, MultiValue
//
// # Encoding Modes
//
// A value nested inside a composite uses its nested form: variable-length
// kinds carry a 4-byte big-endian length, fixed-width kinds their full width.
// A value occupying a whole part uses its top-level form: no length prefix,
// and zero-like values (false, 0, empty option, enum variant 0 without fields)
// encode to the empty part.
//
// # Type Expressions
//
// Parameter and field types are expressions such as "List<Option<u32>>",
// "variadic<multi<Address,BigUint>>" or "tuple<u8,bytes>", parsed by
// TypeFormulaParser and resolved against built-in names and the definition's
// custom types.
//
// # References
//
//   - https://docs.multiversx.com/developers/data/serialization-overview
//   - https://docs.multiversx.com/developers/data/multi-values
package scabi
