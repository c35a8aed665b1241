package agentproxy

import (
	"github.com/nspcc-dev/neo-go/pkg/util"
)

type (
	// MerkleProof is an inclusion proof for the voter account state,
	// forwarded to the voting contract as is.
	MerkleProof struct {
		Index uint32
		Path  []util.Uint256
	}

	// AccountState is a snapshot of a voter account in the voting contract.
	AccountState struct {
		Account          util.Uint160
		UpdateTimestamp  uint64
		Balance          int64
		DelegatedBalance int64
		Delegation       util.Uint160
	}

	// VAccount is a versioned AccountState. Version 0 is the only currently
	// known layout.
	VAccount struct {
		Version int64
		State   AccountState
	}
)

// Parameter returns the proof in the form accepted by the castVote
// invocation wrappers.
func (p MerkleProof) Parameter() []any {
	path := make([]any, 0, len(p.Path))
	for i := range p.Path {
		path = append(path, p.Path[i])
	}
	return []any{int64(p.Index), path}
}

// Parameter returns the account in the form accepted by the castVote
// invocation wrappers.
func (a VAccount) Parameter() []any {
	return []any{a.Version, []any{
		a.State.Account,
		int64(a.State.UpdateTimestamp),
		a.State.Balance,
		a.State.DelegatedBalance,
		a.State.Delegation,
	}}
}
