package scabi

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// EndpointPrototype holds blank input and output values for one endpoint.
type EndpointPrototype struct {
	Name             string
	InputParameters  []Value
	OutputParameters []Value
}

// clone creates a deep copy of the prototype lists.
func (p *EndpointPrototype) clone() *EndpointPrototype {
	return &EndpointPrototype{
		Name:             p.Name,
		InputParameters:  cloneValues(p.InputParameters),
		OutputParameters: cloneValues(p.OutputParameters),
	}
}

// Abi is a registry of value prototypes built once from a Definition.
// Its prototypes are never mutated after construction: every operation works
// on fresh clones, so an Abi is safe for concurrent use.
type Abi struct {
	definition  *Definition
	parser      *TypeFormulaParser
	serializer  *Serializer
	logger      *zap.Logger
	customTypes map[string]Codable
	endpoints   map[string]*EndpointPrototype
	constructor *EndpointPrototype

	// building tracks custom types under construction; only used by NewAbi.
	building map[string]bool
}

// NewAbi builds prototypes for every custom type and endpoint of definition.
func NewAbi(definition *Definition, opts ...Option) (*Abi, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	serializer, err := NewSerializer(cfg.partsSeparator)
	if err != nil {
		return nil, err
	}

	a := &Abi{
		definition:  definition,
		parser:      NewTypeFormulaParser(),
		serializer:  serializer,
		logger:      cfg.logger,
		customTypes: make(map[string]Codable),
		endpoints:   make(map[string]*EndpointPrototype, len(definition.Endpoints)),
		building:    make(map[string]bool),
	}

	for _, name := range definition.Types.Names() {
		if _, err := a.resolveCustomType(name); err != nil {
			return nil, err
		}
	}

	for _, endpoint := range definition.Endpoints {
		if _, exists := a.endpoints[endpoint.Name]; exists {
			return nil, fmt.Errorf("scabi: duplicate endpoint %q", endpoint.Name)
		}
		prototype, err := a.createEndpointPrototype(endpoint)
		if err != nil {
			return nil, err
		}
		a.endpoints[endpoint.Name] = prototype
	}

	constructor := EndpointDefinition{Name: "constructor"}
	if definition.Constructor != nil {
		constructor = *definition.Constructor
		constructor.Name = "constructor"
	}
	if a.constructor, err = a.createEndpointPrototype(constructor); err != nil {
		return nil, err
	}

	a.building = nil
	a.logger.Debug("abi prototypes built",
		zap.String("contract", definition.Name),
		zap.Int("customTypes", len(a.customTypes)),
		zap.Int("endpoints", len(a.endpoints)),
	)
	return a, nil
}

// MustNewAbi is like NewAbi but panics on error.
func MustNewAbi(definition *Definition, opts ...Option) *Abi {
	a, err := NewAbi(definition, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Definition returns the definition the Abi was built from.
func (a *Abi) Definition() *Definition {
	return a.definition
}

// Serializer returns the serializer used for endpoint values.
func (a *Abi) Serializer() *Serializer {
	return a.serializer
}

// HasEndpoint returns true if the Abi has an endpoint with the given name.
func (a *Abi) HasEndpoint(name string) bool {
	_, ok := a.endpoints[name]
	return ok
}

// EndpointNames returns all endpoint names in sorted order.
func (a *Abi) EndpointNames() []string {
	names := make([]string, 0, len(a.endpoints))
	for name := range a.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EndpointPrototype returns a fresh copy of the named endpoint's prototypes.
func (a *Abi) EndpointPrototype(name string) (*EndpointPrototype, error) {
	prototype, err := a.getEndpointPrototype(name)
	if err != nil {
		return nil, err
	}
	return prototype.clone(), nil
}

// CustomTypePrototype returns a fresh blank value of the named struct or enum.
func (a *Abi) CustomTypePrototype(name string) (Codable, error) {
	prototype, ok := a.customTypes[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return cloneCodable(prototype), nil
}

// EncodeEndpointInputParameters imports one native value per declared input
// and encodes them into parts.
func (a *Abi) EncodeEndpointInputParameters(endpointName string, values []any) ([][]byte, error) {
	prototype, err := a.getEndpointPrototype(endpointName)
	if err != nil {
		return nil, err
	}
	return a.encodeValues(endpointName, Input, prototype.InputParameters, values)
}

// EncodeConstructorInputParameters is EncodeEndpointInputParameters for the constructor.
func (a *Abi) EncodeConstructorInputParameters(values []any) ([][]byte, error) {
	return a.encodeValues(a.constructor.Name, Input, a.constructor.InputParameters, values)
}

// EncodeEndpointOutputParameters encodes native results the way the contract would return them.
func (a *Abi) EncodeEndpointOutputParameters(endpointName string, values []any) ([][]byte, error) {
	prototype, err := a.getEndpointPrototype(endpointName)
	if err != nil {
		return nil, err
	}
	return a.encodeValues(endpointName, Output, prototype.OutputParameters, values)
}

// DecodeEndpointOutputParameters decodes contract results into native values,
// one per declared output.
func (a *Abi) DecodeEndpointOutputParameters(endpointName string, parts [][]byte) ([]any, error) {
	prototype, err := a.getEndpointPrototype(endpointName)
	if err != nil {
		return nil, err
	}
	return a.decodeParts(endpointName, Output, prototype.OutputParameters, parts)
}

// DecodeEndpointInputParameters decodes call arguments into native values,
// one per declared input.
func (a *Abi) DecodeEndpointInputParameters(endpointName string, parts [][]byte) ([]any, error) {
	prototype, err := a.getEndpointPrototype(endpointName)
	if err != nil {
		return nil, err
	}
	return a.decodeParts(endpointName, Input, prototype.InputParameters, parts)
}

// EncodeCallData renders a contract call as "endpoint@hex@hex...".
func (a *Abi) EncodeCallData(endpointName string, values []any) (string, error) {
	parts, err := a.EncodeEndpointInputParameters(endpointName, values)
	if err != nil {
		return "", err
	}
	return a.formatCallData(endpointName, parts), nil
}

func (a *Abi) formatCallData(endpointName string, parts [][]byte) string {
	if len(parts) == 0 {
		return endpointName
	}
	return endpointName + a.serializer.partsSeparator + a.serializer.encodeParts(parts)
}

func (a *Abi) getEndpointPrototype(name string) (*EndpointPrototype, error) {
	prototype, ok := a.endpoints[name]
	if !ok {
		return nil, &EndpointNotFoundError{Name: name}
	}
	return prototype, nil
}

// importValues clones prototypes and imports one native value into each.
func importValues(endpoint string, direction Direction, prototypes []Value, natives []any) ([]Value, error) {
	if len(natives) != len(prototypes) {
		return nil, &ArityMismatchError{Endpoint: endpoint, Expected: len(prototypes), Actual: len(natives)}
	}

	values := cloneValues(prototypes)
	for i, native := range natives {
		if err := values[i].SetNative(native); err != nil {
			return nil, &ParameterError{Direction: direction, Index: i, Err: err}
		}
	}
	return values, nil
}

func (a *Abi) encodeValues(endpoint string, direction Direction, prototypes []Value, natives []any) ([][]byte, error) {
	values, err := importValues(endpoint, direction, prototypes, natives)
	if err != nil {
		return nil, err
	}

	parts, err := a.serializer.serializeToParts(values, direction)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("encoded endpoint parameters",
		zap.String("endpoint", endpoint),
		zap.String("direction", string(direction)),
		zap.Int("parts", len(parts)),
	)
	return parts, nil
}

func (a *Abi) decodeParts(endpoint string, direction Direction, prototypes []Value, parts [][]byte) ([]any, error) {
	values := cloneValues(prototypes)
	if err := a.serializer.DeserializeParts(parts, values); err != nil {
		return nil, err
	}

	natives := make([]any, len(values))
	for i, value := range values {
		natives[i] = value.Native()
	}

	a.logger.Debug("decoded endpoint parameters",
		zap.String("endpoint", endpoint),
		zap.String("direction", string(direction)),
		zap.Int("parts", len(parts)),
	)
	return natives, nil
}

func (a *Abi) createEndpointPrototype(endpoint EndpointDefinition) (*EndpointPrototype, error) {
	inputs, err := a.createParameterPrototypes(endpoint.Name, Input, endpoint.Inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := a.createParameterPrototypes(endpoint.Name, Output, endpoint.Outputs)
	if err != nil {
		return nil, err
	}
	return &EndpointPrototype{
		Name:             endpoint.Name,
		InputParameters:  inputs,
		OutputParameters: outputs,
	}, nil
}

func (a *Abi) createParameterPrototypes(endpoint string, direction Direction, parameters []ParameterDefinition) ([]Value, error) {
	prototypes := make([]Value, 0, len(parameters))
	for i, parameter := range parameters {
		formula, err := a.parser.ParseExpression(parameter.Type)
		if err != nil {
			return nil, fmt.Errorf("scabi: endpoint %q: %w", endpoint, &ParameterError{Direction: direction, Index: i, Err: err})
		}
		prototype, err := a.createPrototype(formula)
		if err != nil {
			return nil, fmt.Errorf("scabi: endpoint %q: %w", endpoint, &ParameterError{Direction: direction, Index: i, Err: err})
		}
		prototypes = append(prototypes, prototype)
	}
	return prototypes, nil
}

// createPrototype resolves a type formula into a blank value.
func (a *Abi) createPrototype(formula *TypeFormula) (Value, error) {
	switch formula.Name {
	case "bool":
		return scalar(formula, &BoolValue{})
	case "u8":
		return scalar(formula, &U8Value{})
	case "u16":
		return scalar(formula, &U16Value{})
	case "u32", "usize":
		return scalar(formula, &U32Value{})
	case "u64":
		return scalar(formula, &U64Value{})
	case "i8":
		return scalar(formula, &I8Value{})
	case "i16":
		return scalar(formula, &I16Value{})
	case "i32", "isize":
		return scalar(formula, &I32Value{})
	case "i64":
		return scalar(formula, &I64Value{})
	case "BigUint":
		return scalar(formula, NewBigUIntValue())
	case "BigInt":
		return scalar(formula, NewBigIntValue())
	case "bytes", "CodeMetadata":
		return scalar(formula, &BytesValue{})
	case "utf-8 string", "TokenIdentifier", "EgldOrEsdtTokenIdentifier":
		return scalar(formula, &StringValue{})
	case "Address":
		return scalar(formula, &AddressValue{})

	case "tuple":
		items, err := a.createCodables(formula, 1)
		if err != nil {
			return nil, err
		}
		return &TupleValue{Items: items}, nil
	case "Option":
		items, err := a.createCodables(formula, 1, 1)
		if err != nil {
			return nil, err
		}
		return NewOptionValue(items[0]), nil
	case "List":
		items, err := a.createCodables(formula, 1, 1)
		if err != nil {
			return nil, err
		}
		return NewListValue(PrototypeFactory(items[0])), nil

	case "optional":
		items, err := a.createValues(formula, 1, 1)
		if err != nil {
			return nil, err
		}
		return NewOptionalValue(items[0]), nil
	case "variadic":
		items, err := a.createValues(formula, 1, 1)
		if err != nil {
			return nil, err
		}
		item := items[0]
		return NewVariadicValues(func() Value { return item.Clone() }), nil
	case "multi":
		items, err := a.createValues(formula, 1)
		if err != nil {
			return nil, err
		}
		return NewMultiValue(items...), nil
	}

	if len(formula.TypeParameters) > 0 {
		return nil, fmt.Errorf("%w: %s takes none, got %d", ErrTypeParameters, formula.Name, len(formula.TypeParameters))
	}
	return a.resolveCustomType(formula.Name)
}

func scalar(formula *TypeFormula, prototype Codable) (Value, error) {
	if len(formula.TypeParameters) > 0 {
		return nil, fmt.Errorf("%w: %s takes none, got %d", ErrTypeParameters, formula.Name, len(formula.TypeParameters))
	}
	return prototype, nil
}

// createValues resolves the type parameters of formula, checking their count.
// A negative or omitted max means unbounded.
func (a *Abi) createValues(formula *TypeFormula, bounds ...int) ([]Value, error) {
	count := len(formula.TypeParameters)
	if count < bounds[0] || (len(bounds) > 1 && count > bounds[1]) {
		return nil, fmt.Errorf("%w: %s got %d", ErrTypeParameters, formula, count)
	}
	values := make([]Value, count)
	for i, parameter := range formula.TypeParameters {
		value, err := a.createPrototype(parameter)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// createCodables is createValues for positions where multi-values are not allowed.
func (a *Abi) createCodables(formula *TypeFormula, bounds ...int) ([]Codable, error) {
	values, err := a.createValues(formula, bounds...)
	if err != nil {
		return nil, err
	}
	codables := make([]Codable, len(values))
	for i, value := range values {
		codable, ok := value.(Codable)
		if !ok {
			return nil, fmt.Errorf("%w: %s inside %s", ErrMultiValueNested, formula.TypeParameters[i], formula.Name)
		}
		codables[i] = codable
	}
	return codables, nil
}

func (a *Abi) createCodable(expression string) (Codable, error) {
	formula, err := a.parser.ParseExpression(expression)
	if err != nil {
		return nil, err
	}
	value, err := a.createPrototype(formula)
	if err != nil {
		return nil, err
	}
	codable, ok := value.(Codable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMultiValueNested, formula)
	}
	return codable, nil
}

// resolveCustomType returns a fresh copy of a struct or enum prototype,
// building and memoising it on first use.
func (a *Abi) resolveCustomType(name string) (Value, error) {
	if prototype, ok := a.customTypes[name]; ok {
		return prototype.Clone(), nil
	}
	if a.building[name] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicType, name)
	}

	var (
		prototype Codable
		err       error
	)
	a.building[name] = true
	if definition, ok := a.definition.Types.Enums[name]; ok {
		prototype, err = a.createEnumPrototype(name, definition)
	} else if definition, ok := a.definition.Types.Structs[name]; ok {
		prototype, err = a.createStructPrototype(name, definition)
	} else {
		err = &UnknownTypeError{Name: name}
	}
	delete(a.building, name)
	if err != nil {
		return nil, err
	}

	a.customTypes[name] = prototype
	return prototype.Clone(), nil
}

func (a *Abi) createFields(owner string, definitions []FieldDefinition) ([]Field, error) {
	fields := make([]Field, 0, len(definitions))
	for _, definition := range definitions {
		value, err := a.createCodable(definition.Type)
		if err != nil {
			return nil, fmt.Errorf("scabi: %s field %q: %w", owner, definition.Name, err)
		}
		fields = append(fields, Field{Name: definition.Name, Value: value})
	}
	return fields, nil
}

func (a *Abi) createStructPrototype(name string, definition StructDefinition) (Codable, error) {
	fields, err := a.createFields("struct "+name, definition.Fields)
	if err != nil {
		return nil, err
	}
	return &StructValue{Fields: fields}, nil
}

func (a *Abi) createEnumPrototype(name string, definition EnumDefinition) (Codable, error) {
	layout := &enumLayout{
		variants: make(map[uint8]enumVariantLayout, len(definition.Variants)),
		byName:   make(map[string]uint8, len(definition.Variants)),
	}
	for _, variant := range definition.Variants {
		if _, exists := layout.variants[variant.Discriminant]; exists {
			return nil, fmt.Errorf("scabi: enum %s: duplicate discriminant %d", name, variant.Discriminant)
		}
		fields, err := a.createFields("enum "+name+"::"+variant.Name, variant.Fields)
		if err != nil {
			return nil, err
		}
		layout.variants[variant.Discriminant] = enumVariantLayout{name: variant.Name, fields: fields}
		layout.byName[variant.Name] = variant.Discriminant
	}
	return NewEnumValue(layout), nil
}

// enumLayout is the VariantProvider derived from an enum definition.
// It is read-only once built.
type enumLayout struct {
	variants map[uint8]enumVariantLayout
	byName   map[string]uint8
}

type enumVariantLayout struct {
	name   string
	fields []Field
}

func (l *enumLayout) VariantFields(discriminant uint8) ([]Field, error) {
	variant, ok := l.variants[discriminant]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscriminant, discriminant)
	}
	return cloneFields(variant.fields), nil
}

func (l *enumLayout) VariantName(discriminant uint8) string {
	return l.variants[discriminant].name
}

func (l *enumLayout) VariantDiscriminant(name string) (uint8, bool) {
	discriminant, ok := l.byName[name]
	return discriminant, ok
}
