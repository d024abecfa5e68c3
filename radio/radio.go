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

// Package radio implements the per-node radio state machine: the OFF/RX/TX
// mode discipline, the transmit and receive tasks, the intent-to-deliver
// gate the medium consults before painting the radio with a frame, and the
// bounded event histories tests inspect.
package radio

import (
	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/types"
)

const (
	// defaultThresholdRSSI is the minimum signal strength a radio accepts
	// unless configured otherwise.
	defaultThresholdRSSI = 0.1
	// txRSSI is the signal strength every transmission is sent with.
	txRSSI = 1.0
)

// rxAbortCause is delivered to a live pending-delivery task when its
// receiver leaves receive mode mid-airtime.
const rxAbortCause = "Radio stopped being in receive mode!"

// Radio is the interface between a node and the world allowing the exchange
// of packets. Only the radio's own tasks mutate its mode; the world touches
// it solely through the suspension-free NotifyIntentToDeliver path.
type Radio struct {
	env           *kernel.Env
	name          types.Identifier
	mode          types.RadioMode
	thresholdRSSI float64

	// transmitEvent passes frames to the world for routing.
	transmitEvent *kernel.SharedEvent
	// receiveEvent passes frames from the world to a listening receive task.
	receiveEvent *kernel.SharedEvent
	// pendingRx is the delivery tracker the world spawned for a frame
	// currently painting this radio; its full airtime must elapse without
	// interference before the frame is handed to receiveEvent.
	pendingRx *kernel.Proc

	txHistory eventRing
	rxHistory eventRing
}

// New creates a radio, off, for the named node.
func New(env *kernel.Env, name types.Identifier) *Radio {
	return &Radio{
		env:           env,
		name:          name,
		mode:          types.RadioOff,
		thresholdRSSI: defaultThresholdRSSI,
		transmitEvent: kernel.NewSharedEvent(env),
		receiveEvent:  kernel.NewSharedEvent(env),
	}
}

// Mode returns the radio's current mode.
func (r *Radio) Mode() types.RadioMode {
	return r.mode
}

// ThresholdRSSI returns the minimum signal strength this radio accepts.
func (r *Radio) ThresholdRSSI() float64 {
	return r.thresholdRSSI
}

// SetThresholdRSSI configures the minimum signal strength this radio accepts.
func (r *Radio) SetThresholdRSSI(threshold float64) {
	r.thresholdRSSI = threshold
}

// TransmitEvent returns the shared event carrying this radio's outgoing
// frames; the world parks on it.
func (r *Radio) TransmitEvent() *kernel.SharedEvent {
	return r.transmitEvent
}

// ReceiveEvent returns the shared event carrying frames whose airtime
// completed cleanly at this radio.
func (r *Radio) ReceiveEvent() *kernel.SharedEvent {
	return r.receiveEvent
}

// PendingDelivery returns the delivery tracker currently painting this
// radio, if any.
func (r *Radio) PendingDelivery() *kernel.Proc {
	return r.pendingRx
}

// SetPendingDelivery records the delivery tracker the world spawned for this
// radio.
func (r *Radio) SetPendingDelivery(p *kernel.Proc) {
	r.pendingRx = p
}

// TxHistory returns the logged transmit events, oldest first.
func (r *Radio) TxHistory() []PacketEvent {
	return r.txHistory.snapshot()
}

// RxHistory returns the logged receive-side events, oldest first.
func (r *Radio) RxHistory() []PacketEvent {
	return r.rxHistory.snapshot()
}

// Transmit suspends the radio in transmit mode for the packet airtime and
// passes the frame to the world for routing. The returned task completes
// when the transmission ends.
func (r *Radio) Transmit(duration float64, data *packet.DataPacket) *kernel.Proc {
	return r.env.Process(r.name+".tx", func(p *kernel.Proc) interface{} {
		r.mode = types.RadioTX
		txPacket := packet.NewRadioPacket(data, duration, txRSSI)
		r.transmitEvent.Reactivate(txPacket)
		logger.Debugf("%s radio begins TX. Packet: %v", r.name, txPacket)

		if err := p.Sleep(duration); err != nil {
			logger.Warnf("%s radio TX interrupted: %v", r.name, err)
			r.mode = types.RadioOff
			return nil
		}

		r.mode = types.RadioOff
		r.txHistory.append(PacketEvent{
			Status: StatusSuccessTX,
			Time:   p.Now(),
			Packet: txPacket,
		})
		logger.Debugf("%s radio completes TX.", r.name)
		return nil
	})
}

// NotifyIntentToDeliver checks whether delivery of a frame is feasible: the
// radio must be in receive mode and the frame's signal strength must reach
// the radio's threshold. Infeasible arrivals are logged as drops at their
// arrival time. A true result does not promise successful delivery; a later
// collision may still cancel it.
func (r *Radio) NotifyIntentToDeliver(pkt *packet.RadioPacket) bool {
	if r.mode != types.RadioRX {
		event := PacketEvent{
			Status: StatusDroppedMode,
			Time:   r.env.Now(),
			Packet: pkt,
		}
		r.rxHistory.append(event)
		logger.Debugf("%s radio: %v", r.name, event)
		return false
	}

	if pkt.RSSI() < r.thresholdRSSI {
		event := PacketEvent{
			Status: StatusDroppedRSSI,
			Time:   r.env.Now(),
			Packet: pkt,
		}
		r.rxHistory.append(event)
		logger.Debugf("%s radio: %v", r.name, event)
		return false
	}

	return true
}

// Receive suspends the radio in receive mode for the scheduled duration. The
// returned task completes with the last successfully received DataPacket, or
// nil if nothing got through. The window keeps listening after a dropped or
// collided frame, so a later clean frame within the same window is still
// received.
func (r *Radio) Receive(duration float64) *kernel.Proc {
	return r.env.Process(r.name+".rx", func(p *kernel.Proc) interface{} {
		endTime := p.Now() + duration
		r.mode = types.RadioRX
		logger.Debugf("%s radio begins RX. Will complete at %v", r.name, endTime)

		var received *packet.DataPacket
		for p.Now() < endTime {
			receiving := r.receiveEvent.Current()
			listening := r.env.Timeout(endTime - p.Now())

			res, err := p.WaitAny(receiving, listening)
			if err != nil {
				logger.Warnf("%s radio RX interrupted: %v", r.name, err)
				break
			}

			if v, ok := res[receiving]; ok {
				rxPacket := v.(*packet.RadioPacket)
				r.rxHistory.append(PacketEvent{
					Status: StatusSuccessRX,
					Time:   p.Now(),
					Packet: rxPacket,
				})
				received = rxPacket.Data()
				logger.Debugf("%s radio receives packet: %v", r.name, rxPacket)
			} else {
				// The window closed. A frame still painting the radio can no
				// longer be consumed; an empty window is logged as such.
				if r.pendingRx != nil && r.pendingRx.IsAlive() {
					r.pendingRx.Interrupt(rxAbortCause)
				}
				if received == nil {
					r.rxHistory.append(PacketEvent{
						Status: StatusNothingRX,
						Time:   p.Now(),
					})
					logger.Debugf("%s radio received no packet.", r.name)
				}
			}
		}

		r.mode = types.RadioOff
		logger.Debugf("%s radio completes RX.", r.name)
		if received == nil {
			return nil
		}
		return received
	})
}
