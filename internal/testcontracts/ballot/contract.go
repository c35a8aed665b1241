// Package ballot implements a minimal voting endpoint. It is deployed in
// tests in place of the production voting contract: it records the last
// ballot it received, emits a Voted notification and accepts or rejects the
// ballot depending on the configured rejection detail.
package ballot

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// MerkleProof mirrors the proof layout of the agent proxy contract.
	MerkleProof struct {
		Index int
		Path  []interop.Hash256
	}

	// AccountState mirrors the account layout of the agent proxy contract.
	AccountState struct {
		Account          interop.Hash160
		UpdateTimestamp  int
		Balance          int
		DelegatedBalance int
		Delegation       interop.Hash160
	}

	// VAccount mirrors the versioned account layout of the agent proxy
	// contract.
	VAccount struct {
		Version int
		State   AccountState
	}

	// Record is the last ballot received by the contract, all arguments as
	// they arrived.
	Record struct {
		ProposalID int
		Vote       int
		Proof      MerkleProof
		Account    VAccount
	}
)

const (
	lastVoteKey = "lastVote"
	rejectKey   = "rejectWith"
)

func OnNEP17Payment(from interop.Hash160, amount int, data any) {
}

// SetRejectDetail makes every subsequent Vote call return the given detail.
// An empty detail restores acceptance.
func SetRejectDetail(detail string) {
	ctx := storage.GetContext()
	if len(detail) == 0 {
		storage.Delete(ctx, rejectKey)
		return
	}
	storage.Put(ctx, rejectKey, detail)
}

// Vote records the ballot and returns the error detail, empty on success.
func Vote(proposalID int, vote int, merkleProof MerkleProof, vAccount VAccount) string {
	ctx := storage.GetContext()

	storage.Put(ctx, lastVoteKey, std.Serialize(Record{
		ProposalID: proposalID,
		Vote:       vote,
		Proof:      merkleProof,
		Account:    vAccount,
	}))

	runtime.Notify("Voted", proposalID, vote, merkleProof.Index, vAccount.State.Account)

	detail := storage.Get(ctx, rejectKey)
	if detail != nil {
		return detail.(string)
	}

	return ""
}

// LastVote returns the last received ballot or panics if there was none.
func LastVote() Record {
	val := storage.Get(storage.GetReadOnlyContext(), lastVoteKey)
	if val == nil {
		panic("no ballot received")
	}
	return std.Deserialize(val.([]byte)).(Record)
}
