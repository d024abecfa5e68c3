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

// Package packet defines the data exchanged between nodes and the on-air
// frame wrapping it.
package packet

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/types"
)

// DataPacket carries addressed application data between nodes. Packets are
// immutable after construction.
type DataPacket struct {
	src      types.Identifier
	dest     types.Identifier
	contents map[string]interface{}
}

// NewDataPacket builds a packet from precomputed contents.
func NewDataPacket(src, dest types.Identifier, contents map[string]interface{}) *DataPacket {
	return &DataPacket{
		src:      src,
		dest:     dest,
		contents: contents,
	}
}

// NewLazyDataPacket builds a packet from a mapping of field name to nullary
// producer. Each producer is evaluated exactly once, here, in deterministic
// field order, and the produced values are frozen into the packet. This lets
// callers bind state (e.g. an incrementing counter) that is captured fresh
// per constructed packet.
func NewLazyDataPacket(src, dest types.Identifier, fields map[string]func() interface{}) *DataPacket {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	contents := make(map[string]interface{}, len(fields))
	for _, name := range names {
		contents[name] = fields[name]()
	}
	return NewDataPacket(src, dest, contents)
}

// Src returns the source node identifier.
func (p *DataPacket) Src() types.Identifier {
	return p.src
}

// Dest returns the destination node identifier.
func (p *DataPacket) Dest() types.Identifier {
	return p.dest
}

// Fields returns the field names carried within the packet.
func (p *DataPacket) Fields() []string {
	names := make([]string, 0, len(p.contents))
	for name := range p.contents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Data returns the packet contents.
func (p *DataPacket) Data() map[string]interface{} {
	return p.contents
}

// Equal reports structural equality over source, destination and contents.
func (p *DataPacket) Equal(other *DataPacket) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.src == other.src &&
		p.dest == other.dest &&
		reflect.DeepEqual(p.contents, other.contents)
}

func (p *DataPacket) String() string {
	return fmt.Sprintf("Link: %s -> %s, Contents: %v", p.src, p.dest, p.contents)
}

// RadioPacket is the on-air frame exchanged between radios: a data packet
// plus its airtime and received signal strength.
type RadioPacket struct {
	data     *DataPacket
	duration float64
	rssi     float64
}

// NewRadioPacket wraps data for transmission; airtime must be positive and
// RSSI non-negative.
func NewRadioPacket(data *DataPacket, duration, rssi float64) *RadioPacket {
	logger.AssertTruef(duration > 0, "radio packet airtime must be positive, got %v", duration)
	logger.AssertTruef(rssi >= 0, "radio packet RSSI must be non-negative, got %v", rssi)
	return &RadioPacket{
		data:     data,
		duration: duration,
		rssi:     rssi,
	}
}

// Data returns the wrapped data packet.
func (p *RadioPacket) Data() *DataPacket {
	return p.data
}

// Duration returns the packet airtime in simulation ticks.
func (p *RadioPacket) Duration() float64 {
	return p.duration
}

// RSSI returns the received signal strength indicator.
func (p *RadioPacket) RSSI() float64 {
	return p.rssi
}

// Src returns the source node identifier.
func (p *RadioPacket) Src() types.Identifier {
	return p.data.Src()
}

// Dest returns the destination node identifier.
func (p *RadioPacket) Dest() types.Identifier {
	return p.data.Dest()
}

// Equal reports structural equality.
func (p *RadioPacket) Equal(other *RadioPacket) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.data.Equal(other.data) &&
		p.duration == other.duration &&
		p.rssi == other.rssi
}

func (p *RadioPacket) String() string {
	return fmt.Sprintf("DataPacket: (%v), Duration: %v, RSSI: %v", p.data, p.duration, p.rssi)
}
