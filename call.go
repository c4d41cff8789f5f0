package scabi

// Call is a pending invocation of one contract endpoint with its arguments
// already imported. Call is immutable.
type Call struct {
	contract *Contract
	endpoint *EndpointPrototype
	args     []Value
}

// newCall imports rawArgs into clones of the endpoint's input prototypes.
func newCall(contract *Contract, endpoint *EndpointPrototype, rawArgs []any) (*Call, error) {
	args, err := importValues(endpoint.Name, Input, endpoint.InputParameters, rawArgs)
	if err != nil {
		return nil, err
	}
	return &Call{
		contract: contract,
		endpoint: endpoint,
		args:     args,
	}, nil
}

// Contract returns the target contract for this call.
func (c *Call) Contract() *Contract {
	return c.contract
}

// Endpoint returns the name of the invoked endpoint.
func (c *Call) Endpoint() string {
	return c.endpoint.Name
}

// Args returns a copy of the call arguments.
func (c *Call) Args() []Value {
	return cloneValues(c.args)
}

// HasReturnValue returns true if the endpoint declares any output.
func (c *Call) HasReturnValue() bool {
	return len(c.endpoint.OutputParameters) > 0
}

// Parts encodes the arguments into parts.
func (c *Call) Parts() ([][]byte, error) {
	return c.contract.abi.serializer.SerializeToParts(c.args)
}

// Data renders the call as "endpoint@hex@hex...".
func (c *Call) Data() (string, error) {
	parts, err := c.Parts()
	if err != nil {
		return "", err
	}
	return c.contract.abi.formatCallData(c.endpoint.Name, parts), nil
}

// DecodeResults decodes the parts returned by the contract into native values,
// one per declared output.
func (c *Call) DecodeResults(parts [][]byte) ([]any, error) {
	return c.contract.abi.decodeParts(c.endpoint.Name, Output, c.endpoint.OutputParameters, parts)
}
