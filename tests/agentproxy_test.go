package tests

import (
	"crypto/sha256"
	"encoding/json"
	"math/big"
	"path"
	"testing"

	"github.com/ballotbox-dev/agentproxy-contract/common"
	"github.com/ballotbox-dev/agentproxy-contract/contracts/agentproxy/agentproxyconst"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func eventsNamed(aer *state.AppExecResult, name string) []state.NotificationEvent {
	var events []state.NotificationEvent
	for _, ev := range aer.Events {
		if ev.Name == name {
			events = append(events, ev)
		}
	}
	return events
}

func TestApproveCodehash(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	const method = "approveCodehash"

	notOwner := env.e.NewAccount(t)
	cNotOwner := c.WithSigners(notOwner)
	cNotOwner.InvokeFail(t, common.ErrOwnerWitnessFailed, method, "hash123")

	res, err := c.TestInvoke(t, "listCodehashes")
	require.NoError(t, err)
	require.Empty(t, res.Top().Array())

	cOwner := env.ownerInvoker()
	cOwner.Invoke(t, stackitem.Null{}, method, "hash123")

	c.Invoke(t, stackitem.NewBool(true), "isApprovedCodehash", "hash123")
	c.Invoke(t, stackitem.NewBool(false), "isApprovedCodehash", "hash456")

	// re-approval is a no-op
	cOwner.Invoke(t, stackitem.Null{}, method, "hash123")

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray([]byte("hash123")),
	}), "listCodehashes")
}

func TestRegisterAgent(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	const method = "registerAgent"

	acc := env.e.NewAccount(t)
	cAcc := c.WithSigners(acc)

	cAcc.Invoke(t, stackitem.NewBool(true), method, acc.ScriptHash(), "hash123")
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte("hash123")),
	}), "getAgent", acc.ScriptHash())

	// repeated registration overwrites the record
	cAcc.Invoke(t, stackitem.NewBool(true), method, acc.ScriptHash(), "hash456")
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte("hash456")),
	}), "getAgent", acc.ScriptHash())

	// registration on behalf of another account requires its witness
	other := env.e.NewAccount(t)
	cAcc.InvokeFail(t, common.ErrWitnessFailed, method, other.ScriptHash(), "hash123")

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(acc.ScriptHash().BytesBE()),
	}), "listAgents")
}

func TestGetAgentMissing(t *testing.T) {
	env := newProxyEnv(t)

	acc := env.e.NewAccount(t)
	env.proxy.InvokeFail(t, agentproxyconst.AgentNotFoundError, "getAgent", acc.ScriptHash())
}

func TestGetContractBalance(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	c.Invoke(t, stackitem.NewBigInteger(big.NewInt(0)), "getContractBalance")

	fundWithGAS(t, env.e, env.proxyHash, 1_0000_0000)
	c.Invoke(t, stackitem.NewBigInteger(big.NewInt(1_0000_0000)), "getContractBalance")
}

func TestCastVote(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	fundWithGAS(t, env.e, env.proxyHash, 1_0000_0000)

	voter := env.e.NewAccount(t).ScriptHash()
	leaf1 := util.Uint256(sha256.Sum256([]byte("leaf-1")))
	leaf2 := util.Uint256(sha256.Sum256([]byte("leaf-2")))

	proof := []any{7, []any{leaf1, leaf2}}
	vAccount := []any{0, []any{voter, 1234567, 500, 100, util.Uint160{}}}

	h := c.Invoke(t, stackitem.Null{}, "castVote", 42, 1, proof, vAccount)
	aer := c.CheckHalt(t, h)

	// the ballot is relayed exactly once...
	voted := eventsNamed(aer, "Voted")
	require.Equal(t, 1, len(voted))
	require.Equal(t, env.ballotHash, voted[0].ScriptHash)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(42)),
		stackitem.NewBigInteger(big.NewInt(1)),
		stackitem.NewBigInteger(big.NewInt(7)),
		stackitem.NewByteArray(voter.BytesBE()),
	}), voted[0].Item)

	// ...and the callback reports success exactly once
	relayed := eventsNamed(aer, "VoteRelayed")
	require.Equal(t, 1, len(relayed))
	require.Equal(t, env.proxyHash, relayed[0].ScriptHash)

	relayedItems := relayed[0].Item.Value().([]stackitem.Item)
	require.Len(t, relayedItems, 3)
	require.Equal(t, int64(42), relayedItems[0].Value().(*big.Int).Int64())
	require.Equal(t, int64(1), relayedItems[1].Value().(*big.Int).Int64())

	errDetail, err := relayedItems[2].TryBytes()
	require.NoError(t, err)
	require.Empty(t, errDetail)

	// the voting contract received the deposit
	gasInvoker := env.e.CommitteeInvoker(env.e.NativeHash(t, nativenames.Gas))
	res, err := gasInvoker.TestInvoke(t, "balanceOf", env.ballotHash)
	require.NoError(t, err)
	require.Equal(t, int64(agentproxyconst.VoteDeposit), res.Top().BigInt().Int64())

	// all four arguments arrived unmodified
	res, err = env.ballotInvoker().TestInvoke(t, "lastVote")
	require.NoError(t, err)

	rec := res.Top().Array()
	require.Len(t, rec, 4)
	require.Equal(t, int64(42), rec[0].Value().(*big.Int).Int64())
	require.Equal(t, int64(1), rec[1].Value().(*big.Int).Int64())

	proofItem := rec[2].Value().([]stackitem.Item)
	require.Len(t, proofItem, 2)
	require.Equal(t, int64(7), proofItem[0].Value().(*big.Int).Int64())

	pathItems := proofItem[1].Value().([]stackitem.Item)
	require.Len(t, pathItems, 2)
	for i, leaf := range []util.Uint256{leaf1, leaf2} {
		b, err := pathItems[i].TryBytes()
		require.NoError(t, err)
		require.Equal(t, leaf.BytesBE(), b)
	}

	accItem := rec[3].Value().([]stackitem.Item)
	require.Len(t, accItem, 2)
	require.Equal(t, int64(0), accItem[0].Value().(*big.Int).Int64())

	stateItem := accItem[1].Value().([]stackitem.Item)
	require.Len(t, stateItem, 5)

	b, err := stateItem[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, voter.BytesBE(), b)
	require.Equal(t, int64(1234567), stateItem[1].Value().(*big.Int).Int64())
	require.Equal(t, int64(500), stateItem[2].Value().(*big.Int).Int64())
	require.Equal(t, int64(100), stateItem[3].Value().(*big.Int).Int64())
}

func TestCastVoteRejected(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	const detail = "proposal is closed"

	fundWithGAS(t, env.e, env.proxyHash, 1_0000_0000)
	env.ballotInvoker().Invoke(t, stackitem.Null{}, "setRejectDetail", detail)

	voter := env.e.NewAccount(t).ScriptHash()
	proof := []any{0, []any{}}
	vAccount := []any{0, []any{voter, 0, 0, 0, util.Uint160{}}}

	h := c.Invoke(t, stackitem.Null{}, "castVote", 42, 2, proof, vAccount)
	aer := c.CheckHalt(t, h)

	relayed := eventsNamed(aer, "VoteRelayed")
	require.Equal(t, 1, len(relayed))
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewBigInteger(big.NewInt(42)),
		stackitem.NewBigInteger(big.NewInt(2)),
		stackitem.NewByteArray([]byte(detail)),
	}), relayed[0].Item)

	// a rejected ballot leaves the proxy state untouched
	res, err := c.TestInvoke(t, "listAgents")
	require.NoError(t, err)
	require.Empty(t, res.Top().Array())

	res, err = c.TestInvoke(t, "listCodehashes")
	require.NoError(t, err)
	require.Empty(t, res.Top().Array())
}

func TestCastVoteNoDeposit(t *testing.T) {
	env := newProxyEnv(t)

	voter := env.e.NewAccount(t).ScriptHash()
	proof := []any{0, []any{}}
	vAccount := []any{0, []any{voter, 0, 0, 0, util.Uint160{}}}

	env.proxy.InvokeFail(t, "failed to attach vote deposit", "castVote", 1, 1, proof, vAccount)
}

func TestVoteCallbackDirect(t *testing.T) {
	env := newProxyEnv(t)

	env.proxy.InvokeFail(t, "direct invocation is forbidden", "voteCallback", 1, 1, "")
}

func TestVerify(t *testing.T) {
	env := newProxyEnv(t)

	const method = "verify"

	env.ownerInvoker().Invoke(t, stackitem.NewBool(true), method)
	env.proxy.Invoke(t, stackitem.NewBool(false), method)
}

func TestContractVersion(t *testing.T) {
	env := newProxyEnv(t)

	env.proxy.Invoke(t, stackitem.NewBigInteger(big.NewInt(common.Version)), "version")
}

func TestUpdate(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	ctr := neotest.CompileFile(t, env.e.CommitteeHash, agentProxyPath,
		path.Join(agentProxyPath, "config.yml"))

	nefBytes, err := ctr.NEF.Bytes()
	require.NoError(t, err)

	manifestBytes, err := json.Marshal(ctr.Manifest)
	require.NoError(t, err)

	c.InvokeFail(t, "only owner can update contract", "update", nefBytes, manifestBytes, nil)
	env.ownerInvoker().InvokeFail(t, common.ErrAlreadyUpdated, "update", nefBytes, manifestBytes, nil)
}

func TestRegistrationScenario(t *testing.T) {
	env := newProxyEnv(t)
	c := env.proxy

	bob := env.e.NewAccount(t)
	cBob := c.WithSigners(bob)

	// a worker registers without any prior approval
	cBob.Invoke(t, stackitem.NewBool(true), "registerAgent", bob.ScriptHash(), "hash123")
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray([]byte("hash123")),
	}), "getAgent", bob.ScriptHash())

	// only the owner manages the allow-list
	cBob.InvokeFail(t, common.ErrOwnerWitnessFailed, "approveCodehash", "hash123")
	env.ownerInvoker().Invoke(t, stackitem.Null{}, "approveCodehash", "hash123")

	c.Invoke(t, stackitem.NewBool(true), "isApprovedCodehash", "hash123")
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray([]byte("hash123")),
	}), "listCodehashes")
}
