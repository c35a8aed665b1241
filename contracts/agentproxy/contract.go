package agentproxy

import (
	"github.com/ballotbox-dev/agentproxy-contract/common"
	"github.com/ballotbox-dev/agentproxy-contract/contracts/agentproxy/agentproxyconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Agent is a worker registered in the contract. Codehash is the hash of
	// the code the worker claims to run, as supplied by the worker itself.
	Agent struct {
		Codehash string
	}

	// MerkleProof is an inclusion proof forwarded to the voting contract
	// as is. The contract does not verify it.
	MerkleProof struct {
		Index int
		Path  []interop.Hash256
	}

	// AccountState is a snapshot of a voter account in the voting contract.
	AccountState struct {
		Account          interop.Hash160
		UpdateTimestamp  int
		Balance          int
		DelegatedBalance int
		Delegation       interop.Hash160
	}

	// VAccount is a versioned AccountState. Version is 0 for the only
	// currently known layout.
	VAccount struct {
		Version int
		State   AccountState
	}
)

const (
	agentPrefix    = 'a'
	codehashPrefix = 'c'

	voteCallbackMethod = "voteCallback"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		addrVoting interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	if len(args.addrVoting) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, common.OwnerKey, args.owner)
	storage.Put(ctx, agentproxyconst.VotingContractKey, args.addrVoting)

	runtime.Log("agent proxy contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()

	if !common.HasUpdateAccess(ctx) {
		panic("only owner can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("agent proxy contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// The contract holds GAS to fund vote deposits, any other token is rejected.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic("agent proxy contract accepts GAS only")
	}
}

// ApproveCodehash adds a code hash to the allow-list of trusted worker
// builds. It can be invoked only by the contract owner. Re-approving an
// already approved code hash is a no-op. There is no removal operation.
func ApproveCodehash(codehash string) {
	ctx := storage.GetContext()

	common.CheckOwnerWitness(ctx)

	storage.Put(ctx, codehashKey(codehash), []byte{1})
	runtime.Log("codehash approved")
}

// IsApprovedCodehash returns true if the given code hash has been approved
// by the contract owner. Note that registration and vote relay do not check
// it, see the package documentation.
func IsApprovedCodehash(codehash string) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, codehashKey(codehash)) != nil
}

// ListCodehashes returns all approved code hashes.
func ListCodehashes() []string {
	ctx := storage.GetReadOnlyContext()
	it := storage.Find(ctx, []byte{codehashPrefix}, storage.KeysOnly|storage.RemovePrefix)

	result := []string{}
	for iterator.Next(it) {
		result = append(result, string(iterator.Value(it).([]byte)))
	}

	return result
}

// RegisterAgent registers account as a worker running the code with the
// given hash. Account witness is required, anything else is not: attestation
// of the claimed code hash is deliberately skipped in this deployment, any
// account may claim any code hash. Repeated registration overwrites the
// previous record, last write wins. Always returns true.
func RegisterAgent(account interop.Hash160, codehash string) bool {
	common.CheckWitness(account)

	ctx := storage.GetContext()
	common.SetSerialized(ctx, agentKey(account), Agent{Codehash: codehash})
	runtime.Log("agent registered")

	return true
}

// GetAgent returns the registration record of the given account. It panics
// if the account has never been registered.
func GetAgent(account interop.Hash160) Agent {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, agentKey(account))
	if data == nil {
		panic(agentproxyconst.AgentNotFoundError)
	}

	return std.Deserialize(data.([]byte)).(Agent)
}

// ListAgents returns accounts of all registered workers.
func ListAgents() []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	it := storage.Find(ctx, []byte{agentPrefix}, storage.KeysOnly|storage.RemovePrefix)

	result := []interop.Hash160{}
	for iterator.Next(it) {
		result = append(result, iterator.Value(it).(interop.Hash160))
	}

	return result
}

// GetContractBalance returns the amount of GAS on the contract account.
func GetContractBalance() int {
	return gas.BalanceOf(runtime.GetExecutingScriptHash())
}

// CastVote relays a ballot to the voting contract. A fixed VoteDeposit of
// GAS is attached to the relayed call, the four arguments are forwarded
// unmodified. After the voting contract settles, voteCallback runs with the
// same proposalID and vote (they are not recoverable from the call result)
// and the result-or-error detail returned by the voting contract.
//
// The method is not gated on the code hash allow-list, matching the
// registration path: any account may relay a vote.
func CastVote(proposalID int, vote int, merkleProof MerkleProof, vAccount VAccount) {
	ctx := storage.GetReadOnlyContext()
	votingContract := storage.Get(ctx, agentproxyconst.VotingContractKey).(interop.Hash160)

	runtime.Log("casting vote " + std.Itoa(vote, 10) +
		" for proposal " + std.Itoa(proposalID, 10))

	current := runtime.GetExecutingScriptHash()
	if !gas.Transfer(current, votingContract, agentproxyconst.VoteDeposit, nil) {
		panic("failed to attach vote deposit")
	}

	detail := contract.Call(votingContract, agentproxyconst.VoteMethod, contract.All,
		proposalID, vote, merkleProof, vAccount).(string)

	contract.Call(current, voteCallbackMethod, contract.All, proposalID, vote, detail)
}

// VoteCallback is a continuation of CastVote scheduled by the contract
// itself, direct invocation is forbidden. It receives the original
// proposalID and vote together with the error detail of the relayed call
// (empty on success), reports the outcome and changes no state.
func VoteCallback(proposalID int, vote int, err string) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(runtime.GetExecutingScriptHash()) {
		panic("voteCallback: direct invocation is forbidden")
	}

	if len(err) == 0 {
		runtime.Log("successfully cast vote " + std.Itoa(vote, 10) +
			" for proposal " + std.Itoa(proposalID, 10))
	} else {
		runtime.Log("failed to cast vote for proposal " +
			std.Itoa(proposalID, 10) + ": " + err)
	}

	runtime.Notify("VoteRelayed", proposalID, vote, err)
}

// Verify checks whether the carrier transaction is signed by the contract
// owner, letting the contract act as a transaction signer.
func Verify() bool {
	ctx := storage.GetReadOnlyContext()
	return runtime.CheckWitness(common.Owner(ctx))
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func agentKey(account interop.Hash160) []byte {
	return append([]byte{agentPrefix}, account...)
}

func codehashKey(codehash string) []byte {
	return append([]byte{codehashPrefix}, codehash...)
}
