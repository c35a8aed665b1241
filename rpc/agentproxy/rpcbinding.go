// Package agentproxy contains RPC wrappers for Agent Proxy contract.
package agentproxy

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// AgentproxyAgent is a contract-specific agentproxy.Agent type used by its methods.
type AgentproxyAgent struct {
	Codehash string
}

// VoteRelayedEvent represents "VoteRelayed" event emitted by the contract.
type VoteRelayedEvent struct {
	ProposalID *big.Int
	Vote *big.Int
	Error string
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetAgent invokes `getAgent` method of contract.
func (c *ContractReader) GetAgent(account util.Uint160) (*AgentproxyAgent, error) {
	return itemToAgentproxyAgent(unwrap.Item(c.invoker.Call(c.hash, "getAgent", account)))
}

// GetContractBalance invokes `getContractBalance` method of contract.
func (c *ContractReader) GetContractBalance() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getContractBalance"))
}

// IsApprovedCodehash invokes `isApprovedCodehash` method of contract.
func (c *ContractReader) IsApprovedCodehash(codehash string) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isApprovedCodehash", codehash))
}

// ListAgents invokes `listAgents` method of contract.
func (c *ContractReader) ListAgents() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "listAgents"))
}

// ListCodehashes invokes `listCodehashes` method of contract.
func (c *ContractReader) ListCodehashes() ([]string, error) {
	return unwrap.ArrayOfUTF8Strings(c.invoker.Call(c.hash, "listCodehashes"))
}

// Verify invokes `verify` method of contract.
func (c *ContractReader) Verify() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "verify"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// ApproveCodehash creates a transaction invoking `approveCodehash` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ApproveCodehash(codehash string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approveCodehash", codehash)
}

// ApproveCodehashTransaction creates a transaction invoking `approveCodehash` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveCodehashTransaction(codehash string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approveCodehash", codehash)
}

// ApproveCodehashUnsigned creates a transaction invoking `approveCodehash` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveCodehashUnsigned(codehash string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approveCodehash", nil, codehash)
}

// CastVote creates a transaction invoking `castVote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CastVote(proposalID *big.Int, vote *big.Int, merkleProof []any, vAccount []any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "castVote", proposalID, vote, merkleProof, vAccount)
}

// CastVoteTransaction creates a transaction invoking `castVote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CastVoteTransaction(proposalID *big.Int, vote *big.Int, merkleProof []any, vAccount []any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "castVote", proposalID, vote, merkleProof, vAccount)
}

// CastVoteUnsigned creates a transaction invoking `castVote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CastVoteUnsigned(proposalID *big.Int, vote *big.Int, merkleProof []any, vAccount []any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "castVote", nil, proposalID, vote, merkleProof, vAccount)
}

// RegisterAgent creates a transaction invoking `registerAgent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RegisterAgent(account util.Uint160, codehash string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "registerAgent", account, codehash)
}

// RegisterAgentTransaction creates a transaction invoking `registerAgent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterAgentTransaction(account util.Uint160, codehash string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "registerAgent", account, codehash)
}

// RegisterAgentUnsigned creates a transaction invoking `registerAgent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterAgentUnsigned(account util.Uint160, codehash string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "registerAgent", nil, account, codehash)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// VoteCallback creates a transaction invoking `voteCallback` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) VoteCallback(proposalID *big.Int, vote *big.Int, err string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "voteCallback", proposalID, vote, err)
}

// VoteCallbackTransaction creates a transaction invoking `voteCallback` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) VoteCallbackTransaction(proposalID *big.Int, vote *big.Int, err string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "voteCallback", proposalID, vote, err)
}

// VoteCallbackUnsigned creates a transaction invoking `voteCallback` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) VoteCallbackUnsigned(proposalID *big.Int, vote *big.Int, err string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "voteCallback", nil, proposalID, vote, err)
}

// itemToAgentproxyAgent converts stack item into *AgentproxyAgent.
func itemToAgentproxyAgent(item stackitem.Item, err error) (*AgentproxyAgent, error) {
	if err != nil {
		return nil, err
	}
	var res = new(AgentproxyAgent)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of AgentproxyAgent from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *AgentproxyAgent) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Codehash, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Codehash: %w", err)
	}

	return nil
}

// VoteRelayedEventsFromApplicationLog retrieves a set of all emitted events
// with "VoteRelayed" name from the provided [result.ApplicationLog].
func VoteRelayedEventsFromApplicationLog(log *result.ApplicationLog) ([]*VoteRelayedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*VoteRelayedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "VoteRelayed" {
				continue
			}
			event := new(VoteRelayedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize VoteRelayedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to VoteRelayedEvent or
// returns an error if it's not possible to do to so.
func (e *VoteRelayedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.ProposalID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ProposalID: %w", err)
	}

	index++
	e.Vote, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Vote: %w", err)
	}

	index++
	e.Error, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Error: %w", err)
	}

	return nil
}
