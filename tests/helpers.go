package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const (
	agentProxyPath = "../contracts/agentproxy"
	ballotPath     = "../internal/testcontracts/ballot"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func deployBallotContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ballotPath, path.Join(ballotPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

func deployAgentProxyContract(t *testing.T, e *neotest.Executor, owner, addrVoting util.Uint160) util.Uint160 {
	args := make([]any, 2)
	args[0] = owner
	args[1] = addrVoting

	c := neotest.CompileFile(t, e.CommitteeHash, agentProxyPath, path.Join(agentProxyPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

// proxyEnv is a deployed agent proxy contract together with the ballot stub
// it relays votes to.
type proxyEnv struct {
	e          *neotest.Executor
	proxy      *neotest.ContractInvoker
	owner      neotest.Signer
	proxyHash  util.Uint160
	ballotHash util.Uint160
}

func newProxyEnv(t *testing.T) *proxyEnv {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	ballotHash := deployBallotContract(t, e)
	proxyHash := deployAgentProxyContract(t, e, owner.ScriptHash(), ballotHash)

	return &proxyEnv{
		e:          e,
		proxy:      e.CommitteeInvoker(proxyHash),
		owner:      owner,
		proxyHash:  proxyHash,
		ballotHash: ballotHash,
	}
}

func (env *proxyEnv) ownerInvoker() *neotest.ContractInvoker {
	return env.proxy.WithSigners(env.owner)
}

func (env *proxyEnv) ballotInvoker() *neotest.ContractInvoker {
	return env.e.CommitteeInvoker(env.ballotHash)
}

func fundWithGAS(t *testing.T, e *neotest.Executor, to util.Uint160, amount int64) {
	gasInvoker := e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas))
	gasInvoker.Invoke(t, stackitem.NewBool(true), "transfer",
		gasInvoker.Committee.ScriptHash(), to, amount, nil)
}
