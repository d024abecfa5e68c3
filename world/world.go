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

// Package world implements the shared radio medium: it observes every
// transmission, routes frames to their recipients and detects on-air
// collisions through per-receiver delivery trackers.
package world

import (
	"fmt"

	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/node"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/radio"
	"github.com/salcardamone/network/types"
)

// CollisionEvent records two frames overlapping on-air at a common receiver.
// The pair is unordered.
type CollisionEvent struct {
	Time    float64
	PacketA *packet.RadioPacket
	PacketB *packet.RadioPacket
}

// Equal reports structural equality; the packet pair is commutative.
func (e CollisionEvent) Equal(other CollisionEvent) bool {
	if e.Time != other.Time {
		return false
	}
	return (e.PacketA.Equal(other.PacketA) && e.PacketB.Equal(other.PacketB)) ||
		(e.PacketA.Equal(other.PacketB) && e.PacketB.Equal(other.PacketA))
}

func (e CollisionEvent) String() string {
	return fmt.Sprintf("Time: %v, RadioPacket A: (%v), RadioPacket B: (%v)",
		e.Time, e.PacketA, e.PacketB)
}

// collisionHistoryCapacity is the fixed size of the collision event ring.
const collisionHistoryCapacity = 100

type collisionRing struct {
	events []CollisionEvent
}

func (r *collisionRing) append(e CollisionEvent) {
	if len(r.events) == collisionHistoryCapacity {
		copy(r.events, r.events[1:])
		r.events[collisionHistoryCapacity-1] = e
		return
	}
	r.events = append(r.events, e)
}

func (r *collisionRing) snapshot() []CollisionEvent {
	out := make([]CollisionEvent, len(r.events))
	copy(out, r.events)
	return out
}

// World is the medium nodes communicate over. Constructing one spawns the
// communications task routing every transmission. The world holds the nodes
// by name but reaches their radios only through that mapping.
type World struct {
	env *kernel.Env
	// nodes maps identifier to node; order preserves insertion for
	// deterministic routing.
	nodes map[types.Identifier]*node.Node
	order []types.Identifier

	comms      *kernel.Proc
	collisions collisionRing
}

// New creates a world inhabited by the given nodes and starts routing.
func New(env *kernel.Env, nodes []*node.Node) *World {
	w := &World{
		env:   env,
		nodes: make(map[types.Identifier]*node.Node, len(nodes)),
	}
	for _, n := range nodes {
		w.nodes[n.Name()] = n
		w.order = append(w.order, n.Name())
	}
	w.comms = env.Process("world.comms", w.communications)
	return w
}

// Collisions returns the logged collision events, oldest first.
func (w *World) Collisions() []CollisionEvent {
	return w.collisions.snapshot()
}

// Stop tears down the medium: the communications task exits at its next
// wake-up and no further frames are routed. Transmissions already painting a
// receiver still run their trackers to completion.
func (w *World) Stop() {
	if w.comms.IsAlive() {
		w.comms.Interrupt("world torn down")
	}
}

// communications waits for any node to transmit and routes each frame fired
// within the same instant. All co-firing transmit events are drained on one
// wake-up. The task runs for the simulation's lifetime; the only interrupt
// it can receive is the teardown from Stop, which ends it.
func (w *World) communications(p *kernel.Proc) interface{} {
	for {
		txEvents := make([]*kernel.Event, 0, len(w.order))
		for _, name := range w.order {
			txEvents = append(txEvents, w.nodes[name].Radio().TransmitEvent().Current())
		}

		res, err := p.WaitAny(txEvents...)
		if err != nil {
			logger.Debugf("world communications task stopped: %v", err)
			return nil
		}

		for _, ev := range txEvents {
			v, ok := res[ev]
			if !ok {
				continue
			}
			w.route(p, v.(*packet.RadioPacket))
		}
	}
}

// route delivers one transmitted frame to its recipient set. Each recipient
// radio is gated synchronously; a passing frame either starts a delivery
// tracker or collides with the one already painting the radio.
func (w *World) route(p *kernel.Proc, txPacket *packet.RadioPacket) {
	var rxNodes []*node.Node
	if txPacket.Dest() == types.Broadcast {
		for _, name := range w.order {
			if name == txPacket.Src() {
				continue
			}
			rxNodes = append(rxNodes, w.nodes[name])
		}
	} else {
		rxNode, ok := w.nodes[txPacket.Dest()]
		if !ok {
			logger.Panicf("packet routed to unknown node %q", txPacket.Dest())
		}
		rxNodes = []*node.Node{rxNode}
	}

	for _, rxNode := range rxNodes {
		rxRadio := rxNode.Radio()
		if !rxRadio.NotifyIntentToDeliver(txPacket) {
			continue
		}

		pending := rxRadio.PendingDelivery()
		if pending == nil || !pending.IsAlive() {
			rxRadio.SetPendingDelivery(w.env.Process(
				rxNode.Name()+".pending-rx",
				w.pendingTransmit(rxRadio, txPacket),
			))
		} else {
			// An earlier frame is still painting this radio; the newcomer
			// interferes with it.
			pending.Interrupt(txPacket)
		}
	}
}

// pendingTransmit is the per-receiver delivery tracker: a frame paints the
// receiver until its full airtime has elapsed. Any interruption within that
// window spoils the delivery; interrupting frames are each logged as one
// collision. The tracker runs to the end of the window regardless, so frames
// arriving after a first collision are still recorded. A frame outliving the
// window does not extend it; a later frame starting just after the window is
// treated as a fresh reception.
func (w *World) pendingTransmit(rxRadio *radio.Radio, txPacket *packet.RadioPacket) kernel.ProcBody {
	return func(p *kernel.Proc) interface{} {
		endTime := p.Now() + txPacket.Duration()
		collision := false

		for p.Now() < endTime {
			err := p.Sleep(endTime - p.Now())
			if err == nil {
				continue
			}
			intr, ok := err.(*kernel.Interrupt)
			if !ok {
				logger.Panicf("delivery tracker failed: %v", err)
			}
			switch cause := intr.Cause.(type) {
			case *packet.RadioPacket:
				logger.Debugf("%v collides with %v", cause.Data(), txPacket.Data())
				w.collisions.append(CollisionEvent{
					Time:    p.Now(),
					PacketA: cause,
					PacketB: txPacket,
				})
			case string:
				logger.Debugf("delivery tracker interrupted: %v", cause)
			}
			collision = true
		}

		if !collision {
			rxRadio.ReceiveEvent().Reactivate(txPacket)
		}
		return nil
	}
}
