/*
Package agentproxy implements Agent Proxy contract.

Agent Proxy contract is a thin proxy between worker agents and the voting
contract. It keeps an owner-maintained allow-list of trusted worker code
hashes, lets any account register itself as a worker with a claimed code
hash and relays ballots to the voting contract, attaching a small fixed GAS
deposit to each relayed vote. The outcome of a relayed vote is reported by
the voteCallback continuation which only logs and notifies, it never touches
contract state.

Registration performs no attestation of the claimed code hash and the vote
relay does not consult the allow-list: the allow-list only answers
isApprovedCodehash queries. Gating castVote on it would be a behavior
change, so the current deployment keeps the relay open.

# Contract notifications

VoteRelayed notification. This notification is produced when the voting
contract settles a relayed ballot, successfully or not. Error is empty on
success and carries the rejection detail otherwise.

	VoteRelayed:
	  - name: proposalID
	    type: Integer
	  - name: vote
	    type: Integer
	  - name: error
	    type: String
*/
package agentproxy

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'contractOwner' -> interop.Hash160
    script hash of the contract owner
  - 'votingScriptHash' -> interop.Hash160
    script hash of the voting contract ballots are relayed to
  - 'c' + code hash -> 1
    approved code hashes of trusted worker builds
  - 'a' + account script hash -> std.Serialize(Agent)
    registered worker agents

# Allow-list
Contract stores approved code hashes as bare storage keys, insertion is
idempotent and nothing is ever removed.

# Agents
Contract stores one serialized Agent structure per registered account,
repeated registration overwrites it.
*/
