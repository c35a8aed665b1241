// Package deploy provides the deployment routine of the Agent Proxy
// contract to a Neo blockchain network.
package deploy

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Agent Proxy contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups deployment parameters of the Agent Proxy contract.
type Prm struct {
	// Writes progress into the log. Optional.
	Logger *zap.Logger

	// Particular Neo blockchain instance the contract is deployed to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	LocalAccount *wallet.Account

	// Compiled contract.
	NEF      nef.File
	Manifest manifest.Manifest

	// Account of the contract owner, the only identity allowed to approve
	// code hashes and update the contract.
	Owner util.Uint160

	// Address of the voting contract ballots are relayed to.
	VotingContract util.Uint160
}

// Deploy deploys the Agent Proxy contract represented by the given Prm and
// returns its address. Deploy is idempotent: if the contract is already on
// the chain, its address is returned without any transaction being sent.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	l := prm.Logger
	if l == nil {
		l = zap.NewNop()
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender: %w", err)
	}

	ctrAddress := state.CreateContractHash(
		prm.LocalAccount.ScriptHash(), prm.NEF.Checksum, prm.Manifest.Name)

	if ctr, err := prm.Blockchain.GetContractStateByHash(ctrAddress); err == nil && ctr != nil {
		l.Info("contract is already deployed", zap.Stringer("address", ctrAddress))
		return ctrAddress, nil
	}

	if err := ctx.Err(); err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment: %w", err)
	}

	l.Info("deploying contract...", zap.Stringer("address", ctrAddress),
		zap.Stringer("owner", prm.Owner), zap.Stringer("voting", prm.VotingContract))

	txHash, vub, err := management.New(act).Deploy(&prm.NEF, &prm.Manifest,
		[]any{prm.Owner, prm.VotingContract})
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deployment transaction: %w", err)
	}

	aer, err := act.Wait(txHash, vub, nil)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("wait for deployment transaction %s: %w", txHash.StringLE(), err)
	}
	if aer.VMState != vmstate.Halt {
		return util.Uint160{}, fmt.Errorf("deployment transaction %s failed: %s", txHash.StringLE(), aer.FaultException)
	}

	l.Info("contract deployed successfully", zap.Stringer("address", ctrAddress))

	return ctrAddress, nil
}
