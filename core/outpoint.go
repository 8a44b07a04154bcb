package core

import "fmt"

// OutPoint references one output of a transaction.
type OutPoint struct {
	Txid Txid
	Vout uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Txid, o.Vout)
}
