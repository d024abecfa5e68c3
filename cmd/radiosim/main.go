// Copyright (c) 2024, The Network Simulator Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// radiosim runs a wireless network scenario, either to its configured
// horizon or interactively from the CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/salcardamone/network/cli"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/simulation"
)

type mainArgs struct {
	Scenario string
	LogLevel string
	AutoGo   bool
}

var args mainArgs

func parseArgs() {
	pflag.StringVarP(&args.Scenario, "scenario", "s", "", "YAML scenario file (built-in demo scenario if unset)")
	pflag.StringVarP(&args.LogLevel, "log", "l", "info", "set logging level")
	pflag.BoolVar(&args.AutoGo, "autogo", false, "run the scenario to its horizon and print histories")
	pflag.Parse()
}

func main() {
	parseArgs()
	logger.SetLevel(logger.ParseLevel(args.LogLevel))

	cfg := simulation.DefaultConfig()
	if args.Scenario != "" {
		var err error
		cfg, err = simulation.LoadConfig(args.Scenario)
		if err != nil {
			logger.Errorf("loading scenario: %v", err)
			os.Exit(1)
		}
	}

	sim, err := simulation.NewSimulation(cfg)
	if err != nil {
		logger.Errorf("building simulation: %v", err)
		os.Exit(1)
	}

	if args.AutoGo {
		sim.Run()
		printHistories(sim)
		return
	}

	// The simulation only ever advances from CLI commands, so the CLI
	// goroutine is the kernel's single owner. Main just waits for the user
	// to exit or a signal to arrive; both funnel into cancel.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	handleSignals(cancel)

	go func() {
		defer cancel()
		if err := cli.RunCli(cli.NewCmdRunner(sim, cancel), nil); err != nil {
			logger.Errorf("CLI failed: %v", err)
		}
	}()
	<-ctx.Done()
}

func printHistories(sim *simulation.Simulation) {
	for _, n := range sim.Nodes() {
		for _, e := range n.Radio().TxHistory() {
			fmt.Printf("%s tx %v\n", n.Name(), e)
		}
		for _, e := range n.Radio().RxHistory() {
			fmt.Printf("%s rx %v\n", n.Name(), e)
		}
	}
	for _, e := range sim.World().Collisions() {
		fmt.Printf("collision %v\n", e)
	}
}

// handleSignals cancels the program on SIGINT/SIGTERM. Stdin is closed so a
// readline blocked on the terminal unblocks too.
func handleSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-c
		logger.Infof("exiting on signal %v", sig)
		cancel()
		_ = os.Stdin.Close()
	}()
}
