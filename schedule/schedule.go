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

// Package schedule describes repeating radio campaigns and the manager task
// driving a radio through them.
package schedule

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/types"
)

// PacketConstructor synthesizes the data packet for one transmit firing. It
// is invoked exactly once per firing, at the firing tick, so payloads may
// depend on time or counters.
type PacketConstructor func() *packet.DataPacket

// Schedule describes a repeating radio campaign: num events of the given
// duration and mode, the k-th due at start + k*delay.
type Schedule struct {
	start    float64
	duration float64
	delay    float64
	num      int
	mode     types.RadioMode
	ctor     PacketConstructor

	state   types.ScheduleState
	current int
}

// New validates and creates a schedule. The inter-event delay must cover the
// event duration, and a transmit schedule needs a packet constructor.
func New(start, duration, delay float64, num int, mode types.RadioMode, ctor PacketConstructor) (*Schedule, error) {
	if duration > delay {
		return nil, errors.Errorf(
			"inter-message delay (%v) in schedule must be greater than or equal to message duration (%v)",
			delay, duration)
	}
	if mode == types.RadioTX && ctor == nil {
		return nil, errors.New("packet constructor can't be nil when schedule mode is TX")
	}

	return &Schedule{
		start:    start,
		duration: duration,
		delay:    delay,
		num:      num,
		mode:     mode,
		ctor:     ctor,
		state:    types.ScheduleActive,
	}, nil
}

// Start returns the time of the schedule's first event.
func (s *Schedule) Start() float64 {
	return s.start
}

// Duration returns the length of a single event.
func (s *Schedule) Duration() float64 {
	return s.duration
}

// Delay returns the time between starts of consecutive events.
func (s *Schedule) Delay() float64 {
	return s.delay
}

// Num returns the total number of events.
func (s *Schedule) Num() int {
	return s.num
}

// Mode returns the radio mode the schedule's events run in.
func (s *Schedule) Mode() types.RadioMode {
	return s.mode
}

// State returns the schedule's lifecycle state.
func (s *Schedule) State() types.ScheduleState {
	return s.state
}

// Suspend removes the schedule from next-event selection, preserving its
// position in the campaign.
func (s *Schedule) Suspend() {
	if s.state == types.ScheduleActive {
		s.state = types.ScheduleSuspended
	}
}

// Activate returns a suspended schedule to next-event selection.
func (s *Schedule) Activate() {
	if s.state == types.ScheduleSuspended {
		s.state = types.ScheduleActive
	}
}

// NextTime returns the time at which the next schedule event is due. Calling
// it again without an intervening Event returns the same value. Querying an
// expired schedule is a caller logic error.
func (s *Schedule) NextTime() (float64, error) {
	if s.current >= s.num {
		return 0, errors.New("schedule has expired -- shouldn't be querying NextTime")
	}
	return s.start + float64(s.current)*s.delay, nil
}

// Event consumes one firing: it advances the schedule by exactly one event
// and, for a transmit schedule, invokes the packet constructor for this
// firing. Receive firings return a nil packet; the caller reads Duration.
// The schedule becomes COMPLETE when its last event is consumed.
func (s *Schedule) Event() (*packet.DataPacket, error) {
	if s.current >= s.num {
		return nil, errors.New("schedule has expired -- no events remain")
	}
	s.current++

	var pkt *packet.DataPacket
	if s.mode == types.RadioTX {
		pkt = s.ctor()
	}

	if s.current == s.num {
		s.state = types.ScheduleComplete
	}
	return pkt, nil
}

func (s *Schedule) String() string {
	return fmt.Sprintf("Schedule{start: %v, duration: %v, delay: %v, num: %d, mode: %v, state: %v}",
		s.start, s.duration, s.delay, s.num, s.mode, s.state)
}
