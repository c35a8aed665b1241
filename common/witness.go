package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// Owner returns the script hash of the contract owner stored on deploy.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// CheckOwnerWitness checks witness of the contract owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(ctx storage.Context) {
	checkWitnessWithPanic(Owner(ctx), ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
