package scabi

// Contract binds an Abi to the address of a deployed contract.
type Contract struct {
	address Address
	abi     *Abi
}

// NewContract creates a Contract for the contract deployed at address.
func NewContract(address Address, abi *Abi) *Contract {
	return &Contract{
		address: address,
		abi:     abi,
	}
}

// Address returns the contract address.
func (c *Contract) Address() Address {
	return c.address
}

// Abi returns the contract Abi.
func (c *Contract) Abi() *Abi {
	return c.abi
}

// Invoke creates a Call of the named endpoint with one native value per declared input.
func (c *Contract) Invoke(endpointName string, args ...any) (*Call, error) {
	endpoint, err := c.abi.getEndpointPrototype(endpointName)
	if err != nil {
		return nil, err
	}
	return newCall(c, endpoint, args)
}

// MustInvoke is like Invoke but panics on error.
func (c *Contract) MustInvoke(endpointName string, args ...any) *Call {
	call, err := c.Invoke(endpointName, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// HasEndpoint returns true if the contract has an endpoint with the given name.
func (c *Contract) HasEndpoint(endpointName string) bool {
	return c.abi.HasEndpoint(endpointName)
}

// EndpointNames returns all endpoint names in sorted order.
func (c *Contract) EndpointNames() []string {
	return c.abi.EndpointNames()
}
