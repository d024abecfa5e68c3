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

package radio

import (
	"fmt"

	"github.com/salcardamone/network/packet"
)

// Status classifies a packet traversal of the radio.
type Status uint8

const (
	// StatusSuccessTX: the packet was transmitted in full.
	StatusSuccessTX Status = iota + 1
	// StatusSuccessRX: the packet was received in full without collision.
	StatusSuccessRX
	// StatusNothingRX: a receive window closed without delivering a packet.
	StatusNothingRX
	// StatusDroppedMode: an arriving packet was dropped because the radio
	// was not in receive mode.
	StatusDroppedMode
	// StatusDroppedRSSI: an arriving packet was dropped because its signal
	// strength was below the radio's threshold.
	StatusDroppedRSSI
)

func (s Status) String() string {
	switch s {
	case StatusSuccessTX:
		return "SUCCESS_TX"
	case StatusSuccessRX:
		return "SUCCESS_RX"
	case StatusNothingRX:
		return "NOTHING_RX"
	case StatusDroppedMode:
		return "DROPPED_MODE"
	case StatusDroppedRSSI:
		return "DROPPED_RSSI"
	default:
		return "INVALID"
	}
}

// PacketEvent records a packet traversing the radio. For a transmitted or
// successfully received packet the time is the end of its airtime; for a
// dropped packet it is the moment of arrival; for an empty window it is the
// end of the window, with a nil packet.
type PacketEvent struct {
	Status Status
	Time   float64
	Packet *packet.RadioPacket
}

// Equal reports structural equality.
func (e PacketEvent) Equal(other PacketEvent) bool {
	return e.Status == other.Status &&
		e.Time == other.Time &&
		e.Packet.Equal(other.Packet)
}

func (e PacketEvent) String() string {
	return fmt.Sprintf("Time: %v, Status: %v, RadioPacket: (%v)", e.Time, e.Status, e.Packet)
}

// EventsWithStatus filters events by status.
func EventsWithStatus(events []PacketEvent, status Status) []PacketEvent {
	var matched []PacketEvent
	for _, e := range events {
		if e.Status == status {
			matched = append(matched, e)
		}
	}
	return matched
}

// historyCapacity is the fixed size of each per-direction event ring.
const historyCapacity = 100

// eventRing is a bounded event window; once full, the oldest event is
// dropped for each new one.
type eventRing struct {
	events []PacketEvent
}

func (r *eventRing) append(e PacketEvent) {
	if len(r.events) == historyCapacity {
		copy(r.events, r.events[1:])
		r.events[historyCapacity-1] = e
		return
	}
	r.events = append(r.events, e)
}

func (r *eventRing) snapshot() []PacketEvent {
	out := make([]PacketEvent, len(r.events))
	copy(out, r.events)
	return out
}
