package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// HasUpdateAccess returns true if contract can be updated, that is, the
// carrier transaction is signed by the contract owner.
func HasUpdateAccess(ctx storage.Context) bool {
	return runtime.CheckWitness(Owner(ctx))
}
