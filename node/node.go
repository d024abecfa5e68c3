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

// Package node binds a radio, a protocol and a schedule manager under one
// node identifier.
package node

import (
	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/radio"
	"github.com/salcardamone/network/types"
)

// Node is a network participant with a radio peripheral and a protocol
// driving it. The node exclusively owns both.
type Node struct {
	name     types.Identifier
	radio    *radio.Radio
	protocol *Protocol
}

// New creates a node with the given unique identifier.
func New(env *kernel.Env, name types.Identifier) *Node {
	r := radio.New(env, name)
	return &Node{
		name:     name,
		radio:    r,
		protocol: NewProtocol(env, r),
	}
}

// Name returns the node's identifier.
func (n *Node) Name() types.Identifier {
	return n.name
}

// Radio returns the node's radio.
func (n *Node) Radio() *radio.Radio {
	return n.radio
}

// Protocol returns the node's protocol.
func (n *Node) Protocol() *Protocol {
	return n.protocol
}
