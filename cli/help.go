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

package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

var commandHelp = map[string]string{
	"collisions": "List the on-air packet collisions recorded by the world.",
	"exit":       "Exit the simulator.",
	"go":         "Advance the simulation by a given number of ticks.",
	"help":       "Show help for a specific command.",
	"history":    "Show a node's radio event history; optionally only tx or rx.",
	"nodes":      "List all nodes with their radio modes.",
	"schedules":  "Show the schedule event log of a node.",
	"time":       "Display the current simulation time.",
}

type help struct {
	termWidth   uint
	maxCmdWidth uint
	commands    []string
}

func newHelp() help {
	h := help{termWidth: 80}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		h.termWidth = uint(width)
	}
	for cmd := range commandHelp {
		h.commands = append(h.commands, cmd)
		if uint(len(cmd)) > h.maxCmdWidth {
			h.maxCmdWidth = uint(len(cmd))
		}
	}
	sort.Strings(h.commands)
	return h
}

// outputGeneralHelp lists all commands with a one-line summary each.
func (h *help) outputGeneralHelp() string {
	var b strings.Builder
	for _, cmd := range h.commands {
		summary := wordwrap.WrapString(commandHelp[cmd], h.termWidth-h.maxCmdWidth-4)
		lines := strings.Split(summary, "\n")
		fmt.Fprintf(&b, "%-*s    %s\n", h.maxCmdWidth, cmd, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(&b, "%-*s    %s\n", h.maxCmdWidth, "", line)
		}
	}
	return b.String()
}

// outputCommandHelp explains a single command.
func (h *help) outputCommandHelp(cmd string) string {
	summary, ok := commandHelp[cmd]
	if !ok {
		return fmt.Sprintf("unknown command: %s\n", cmd)
	}
	return wordwrap.WrapString(summary, h.termWidth) + "\n"
}
