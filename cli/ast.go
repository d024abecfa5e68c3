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

// This file defines the format of all CLI commands.

package cli

import (
	"github.com/alecthomas/participle"
)

type command struct {
	Collisions *CollisionsCmd `  @@` //nolint
	Exit       *ExitCmd       `| @@` //nolint
	Go         *GoCmd         `| @@` //nolint
	Help       *HelpCmd       `| @@` //nolint
	History    *HistoryCmd    `| @@` //nolint
	Nodes      *NodesCmd      `| @@` //nolint
	Schedules  *SchedulesCmd  `| @@` //nolint
	Time       *TimeCmd       `| @@` //nolint
}

// GoCmd defines the `go` command format.
type GoCmd struct {
	Cmd   struct{} `"go"`          //nolint
	Ticks float64  `(@Int|@Float)` //nolint
}

// TimeCmd defines the `time` command format.
type TimeCmd struct {
	Cmd struct{} `"time"` //nolint
}

// NodesCmd defines the `nodes` command format.
type NodesCmd struct {
	Cmd struct{} `"nodes"` //nolint
}

// HistoryCmd defines the `history` command format.
type HistoryCmd struct {
	Cmd  struct{} `"history"`          //nolint
	Node string   `@Ident`             //nolint
	Dir  *string  `[ @("tx" | "rx") ]` //nolint
}

// SchedulesCmd defines the `schedules` command format.
type SchedulesCmd struct {
	Cmd  struct{} `"schedules"` //nolint
	Node string   `@Ident`      //nolint
}

// CollisionsCmd defines the `collisions` command format.
type CollisionsCmd struct {
	Cmd struct{} `"collisions"` //nolint
}

// ExitCmd defines the `exit` command format.
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

// HelpCmd defines the `help` command format.
type HelpCmd struct {
	Cmd   struct{} `"help"`     //nolint
	Topic *string  `[ @Ident ]` //nolint
}

var (
	commandParser = participle.MustBuild(&command{})
)

func parseCmdBytes(b []byte, cmd *command) error {
	err := commandParser.ParseBytes(b, cmd)
	return err
}
