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

// Package cli implements the interactive command line driving a simulation.
package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/salcardamone/network/simulation"
)

const (
	// Prompt is the CLI prompt.
	Prompt = "> "
)

// CmdRunner parses and executes CLI commands against a simulation. The
// simulation only ever advances from here, so the single-owner rule of the
// kernel holds.
type CmdRunner struct {
	sim  *simulation.Simulation
	quit func()
	help help
}

// NewCmdRunner creates a command runner for the simulation. quit, if
// non-nil, is invoked when the user exits.
func NewCmdRunner(sim *simulation.Simulation, quit func()) *CmdRunner {
	return &CmdRunner{
		sim:  sim,
		quit: quit,
		help: newHelp(),
	}
}

// GetPrompt implements CliHandler.
func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

// HandleCommand implements CliHandler.
func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	cmd := &command{}
	if err := parseCmdBytes([]byte(cmdline), cmd); err != nil {
		if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
			return err
		}
		return nil
	}

	if err := rt.execute(cmd, output); err != nil {
		if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
			return err
		}
	}
	return nil
}

func (rt *CmdRunner) execute(cmd *command, output io.Writer) error {
	switch {
	case cmd.Go != nil:
		rt.sim.Go(cmd.Go.Ticks)
		fmt.Fprintf(output, "t=%v\n", rt.sim.Now())
	case cmd.Time != nil:
		fmt.Fprintf(output, "t=%v\n", rt.sim.Now())
	case cmd.Nodes != nil:
		for _, n := range rt.sim.Nodes() {
			fmt.Fprintf(output, "%-8s mode=%v threshold-rssi=%v\n",
				n.Name(), n.Radio().Mode(), n.Radio().ThresholdRSSI())
		}
	case cmd.History != nil:
		n := rt.sim.Node(cmd.History.Node)
		if n == nil {
			return errors.Errorf("unknown node %q", cmd.History.Node)
		}
		dir := ""
		if cmd.History.Dir != nil {
			dir = *cmd.History.Dir
		}
		if dir == "" || dir == "tx" {
			for _, e := range n.Radio().TxHistory() {
				fmt.Fprintf(output, "tx %v\n", e)
			}
		}
		if dir == "" || dir == "rx" {
			for _, e := range n.Radio().RxHistory() {
				fmt.Fprintf(output, "rx %v\n", e)
			}
		}
	case cmd.Schedules != nil:
		n := rt.sim.Node(cmd.Schedules.Node)
		if n == nil {
			return errors.Errorf("unknown node %q", cmd.Schedules.Node)
		}
		for _, e := range n.Protocol().Manager().EventLog() {
			fmt.Fprintf(output, "%v -> %v %v\n", e.Start, e.Stop, e.Mode)
		}
	case cmd.Collisions != nil:
		for _, e := range rt.sim.World().Collisions() {
			fmt.Fprintf(output, "%v\n", e)
		}
	case cmd.Help != nil:
		if cmd.Help.Topic != nil {
			fmt.Fprint(output, rt.help.outputCommandHelp(*cmd.Help.Topic))
		} else {
			fmt.Fprint(output, rt.help.outputGeneralHelp())
		}
	case cmd.Exit != nil:
		rt.sim.Stop()
		if rt.quit != nil {
			rt.quit()
		}
	default:
		return errors.New("unrecognised command")
	}
	return nil
}
