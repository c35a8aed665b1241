// Command agents prints the current state of the Agent Proxy contract: its
// approved code hashes and the registered worker agents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/ballotbox-dev/agentproxy-contract/rpc/agentproxy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractAddress := flag.String("contract", "", "LE script hash of the Agent Proxy contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractAddress == "":
		log.Fatal("missing Agent Proxy contract address")
	}

	err := _dump(*neoRPCEndpoint, *contractAddress)
	if err != nil {
		log.Fatal(err)
	}
}

func _dump(neoRPCEndpoint, contractAddress string) error {
	ctrHash, err := util.Uint160DecodeStringLE(strings.TrimPrefix(contractAddress, "0x"))
	if err != nil {
		return fmt.Errorf("decode contract address: %w", err)
	}

	c, err := rpcclient.New(context.Background(), neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("create Neo RPC client: %w", err)
	}

	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}

	reader := agentproxy.NewReader(invoker.New(c, nil), ctrHash)

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}

	fmt.Printf("contract version: %s\n", version)

	codehashes, err := reader.ListCodehashes()
	if err != nil {
		return fmt.Errorf("list approved code hashes: %w", err)
	}

	fmt.Printf("approved code hashes (%d):\n", len(codehashes))
	for _, h := range codehashes {
		fmt.Println("  " + h)
	}

	accounts, err := reader.ListAgents()
	if err != nil {
		return fmt.Errorf("list registered agents: %w", err)
	}

	fmt.Printf("registered agents (%d):\n", len(accounts))
	for _, acc := range accounts {
		agent, err := reader.GetAgent(acc)
		if err != nil {
			return fmt.Errorf("get agent %s: %w", acc.StringLE(), err)
		}

		fmt.Printf("  %s: %s\n", address.Uint160ToString(acc), agent.Codehash)
	}

	return nil
}
