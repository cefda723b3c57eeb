// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command vbitsim simulates a synthetic chain against a single deployment
// and prints its status report at the tip, in the spirit of Bitcoin Core's
// getdeploymentinfo RPC.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BitcoinActivation/bitcoin/activation"
	"github.com/BitcoinActivation/bitcoin/chain"
	"github.com/BitcoinActivation/bitcoin/deployment"
	"github.com/decred/dcrd/chaincfg/chainhash"
	flags "github.com/jessevdk/go-flags"
)

// simOptions are the command line options accepted by vbitsim.
type simOptions struct {
	Blocks        int64   `short:"n" long:"blocks" description:"number of blocks to mine on top of genesis" default:"200"`
	Period        int64   `short:"p" long:"period" description:"deployment period, in blocks" default:"32"`
	Threshold     int64   `short:"t" long:"threshold" description:"blocks within a period required to lock in" default:"28"`
	Bit           uint8   `short:"b" long:"bit" description:"version bit carrying the signal" default:"0"`
	StartHeight   int64   `long:"start" description:"height at which the deployment may start signalling" default:"16"`
	TimeoutHeight int64   `long:"timeout" description:"height at which a started period gives up" default:"160"`
	SignalPercent float64 `long:"signal-percent" description:"fraction of mined blocks that signal, 0..1" default:"0.9"`
	LockinOnTimeout bool  `long:"lockin-on-timeout" description:"use BIP 8 lock-in-on-timeout instead of BIP 9 failure"`
	JSON          bool    `long:"json" description:"print the report as JSON instead of a table"`
}

func mineChain(opts simOptions) *chain.Node {
	version := int32(deployment.TopBits)
	tip := chain.NewGenesis(chainhash.Hash{}, version)
	for h := int64(1); h <= opts.Blocks; h++ {
		v := int32(deployment.TopBits)
		// Block h signals whenever h*SignalPercent crosses an integer, so
		// SignalPercent of the mined blocks signal, spread evenly.
		if int64(float64(h)*opts.SignalPercent) != int64(float64(h-1)*opts.SignalPercent) {
			v |= int32(uint32(1) << opts.Bit)
		}
		var hash chainhash.Hash
		hash[0] = byte(h)
		hash[1] = byte(h >> 8)
		hash[2] = byte(h >> 16)
		tip = chain.NewChild(tip, hash, v)
	}
	return tip
}

func run() error {
	var opts simOptions
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	cfg := deployment.Config{
		Bit:             opts.Bit,
		StartHeight:     opts.StartHeight,
		TimeoutHeight:   opts.TimeoutHeight,
		Period:          opts.Period,
		Threshold:       opts.Threshold,
		LockinOnTimeout: opts.LockinOnTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid deployment configuration: %w", err)
	}

	manager := activation.NewManager()
	manager.Register("sim", activation.NewVersionBitsChecker(cfg))

	tip := mineChain(opts)

	info, err := manager.Report("sim", tip)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("tip height:  %d\n", tip.Height())
	fmt.Printf("deployment:  %s\n", info.ID)
	fmt.Printf("state:       %s\n", info.State)
	fmt.Printf("since:       %d\n", info.Since)
	if info.Bit != nil {
		fmt.Printf("bit:         %d\n", *info.Bit)
	}
	fmt.Printf("start/end:   %d / %d\n", info.StartTime, info.Timeout)
	if info.Possible != nil {
		fmt.Printf("period:      %d elapsed, %d signalling, threshold %d, possible=%v\n",
			info.Elapsed, info.Count, info.Threshold, *info.Possible)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vbitsim: %v\n", err)
		os.Exit(1)
	}
}
