package core

import "fmt"

// Network selects which Bitcoin network a value belongs to.
//
// The numeric values are the pinned boundary ordinals. They are part of the
// wire contract and must never be reordered; compiled consumers cache them.
type Network uint8

const (
	NetworkMainnet  Network = 0
	NetworkTestnet  Network = 1
	NetworkTestnet4 Network = 2
	NetworkSignet   Network = 3
	NetworkRegtest  Network = 4
)

var networkNames = [...]string{
	NetworkMainnet:  "bitcoin",
	NetworkTestnet:  "testnet",
	NetworkTestnet4: "testnet4",
	NetworkSignet:   "signet",
	NetworkRegtest:  "regtest",
}

// NetworkCount is the number of pinned network variants.
const NetworkCount = len(networkNames)

// Valid reports whether n is one of the pinned variants.
func (n Network) Valid() bool {
	return int(n) < NetworkCount
}

func (n Network) String() string {
	if n.Valid() {
		return networkNames[n]
	}
	return fmt.Sprintf("network(%d)", uint8(n))
}

// NetworkError reports a network name outside the pinned table.
type NetworkError struct {
	Name string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("unknown network %q", e.Name)
}

// ParseNetwork resolves a canonical network name.
func ParseNetwork(name string) (Network, error) {
	for n, s := range networkNames {
		if s == name {
			return Network(n), nil
		}
	}
	return 0, &NetworkError{Name: name}
}
