package agentproxy

import (
	"github.com/ballotbox-dev/agentproxy-contract/contracts/agentproxy/agentproxyconst"
)

const (
	// NotFoundError is returned if the requested agent is missing.
	NotFoundError = agentproxyconst.AgentNotFoundError

	// VoteDeposit is the amount of GAS attached to every relayed vote.
	VoteDeposit = agentproxyconst.VoteDeposit
)
