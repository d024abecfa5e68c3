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

// Package types defines the common types shared across the simulator packages.
package types

// Identifier names a node in the simulated network.
type Identifier = string

// Broadcast is the reserved destination identifier that routes a packet
// to every node except its source.
const Broadcast Identifier = "All"

// RadioMode is the state a radio is in.
type RadioMode uint8

const (
	// RadioOff means the radio is neither transmitting nor receiving.
	RadioOff RadioMode = iota
	// RadioRX means the radio is in receive mode.
	RadioRX
	// RadioTX means the radio is in transmit mode.
	RadioTX
)

func (m RadioMode) String() string {
	switch m {
	case RadioOff:
		return "OFF"
	case RadioRX:
		return "RX"
	case RadioTX:
		return "TX"
	default:
		return "INVALID"
	}
}

// ScheduleState is the lifecycle state of a radio event schedule.
type ScheduleState uint8

const (
	// ScheduleActive schedules participate in next-event selection.
	ScheduleActive ScheduleState = iota + 1
	// ScheduleComplete schedules have fired all of their events.
	ScheduleComplete
	// ScheduleSuspended schedules are skipped during selection, with their
	// internal state preserved.
	ScheduleSuspended
)

func (s ScheduleState) String() string {
	switch s {
	case ScheduleActive:
		return "ACTIVE"
	case ScheduleComplete:
		return "COMPLETE"
	case ScheduleSuspended:
		return "SUSPENDED"
	default:
		return "INVALID"
	}
}
