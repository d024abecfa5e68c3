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

package node

import (
	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/radio"
	"github.com/salcardamone/network/schedule"
)

// PacketHandler reacts to the outcome of a completed receive window; the
// packet is nil when nothing got through.
type PacketHandler func(pkt *packet.DataPacket)

// Protocol is the capability shell binding a radio to a schedule manager.
// Higher-layer state machines install a PacketHandler; the handler is
// invoked exactly once per completed receive window.
type Protocol struct {
	manager *schedule.Manager
	handler PacketHandler
}

// NewProtocol wires a schedule manager to the radio's transmit and receive
// tasks and this protocol's packet handling.
func NewProtocol(env *kernel.Env, r *radio.Radio) *Protocol {
	p := &Protocol{}
	p.manager = schedule.NewManager(env, r.Transmit, r.Receive, p.HandlePacket)
	return p
}

// Manager returns the protocol's schedule manager.
func (p *Protocol) Manager() *schedule.Manager {
	return p.manager
}

// SetHandler installs the higher-layer packet handler.
func (p *Protocol) SetHandler(handler PacketHandler) {
	p.handler = handler
}

// HandlePacket consumes the outcome of a receive window.
func (p *Protocol) HandlePacket(pkt *packet.DataPacket) {
	if p.handler != nil {
		p.handler(pkt)
		return
	}
	logger.Debugf("protocol discarding receive outcome: %v", pkt)
}
