// Package agentproxyconst contains constants of the Agent Proxy contract
// shared between the contract code itself and off-chain applications.
package agentproxyconst

const (
	// AgentNotFoundError is thrown by the getAgent method when the
	// requested account has never been registered.
	AgentNotFoundError = "agent not found"

	// VoteDeposit is a fixed amount of GAS (in its fractions) attached to
	// every vote relayed to the voting contract.
	VoteDeposit = 0_0010_0000

	// VoteMethod is the name of the voting contract method accepting
	// relayed votes.
	VoteMethod = "vote"

	// VotingContractKey is a contract storage key under which the script
	// hash of the voting contract is stored.
	VotingContractKey = "votingScriptHash"
)
