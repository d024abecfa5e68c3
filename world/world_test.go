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

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/node"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/radio"
)

// The standard tick count a test transmission occupies the medium for.
const testDuration = 5.0

// epsilon staggers concurrent completions so co-firing wake-ups resolve in a
// deterministic order.
const epsilon = 1e-3

type testWorld struct {
	env     *kernel.Env
	nodes   []*node.Node
	world   *World
	packets map[string]*packet.DataPacket
}

func newTestWorld() *testWorld {
	env := kernel.NewEnv()
	nodes := []*node.Node{
		node.New(env, "A"),
		node.New(env, "B"),
		node.New(env, "C"),
	}
	return &testWorld{
		env:   env,
		nodes: nodes,
		world: New(env, nodes),
		packets: map[string]*packet.DataPacket{
			"A->B": packet.NewDataPacket("A", "B", map[string]interface{}{"msg": "Hello from A!"}),
			"B->A": packet.NewDataPacket("B", "A", map[string]interface{}{"msg": "Hello from B!"}),
			"C->A": packet.NewDataPacket("C", "A", map[string]interface{}{"msg": "Hello from C!"}),
			"C->X": packet.NewDataPacket("C", "All", map[string]interface{}{"msg": "Hello from C!"}),
		},
	}
}

func (tw *testWorld) radio(idx int) *radio.Radio {
	return tw.nodes[idx].Radio()
}

// verifyNumEvents checks the per-node TX and RX history lengths.
func (tw *testWorld) verifyNumEvents(t *testing.T, txEvents, rxEvents []int) {
	for nodeIdx, n := range tw.nodes {
		assert.Equal(t, txEvents[nodeIdx], len(n.Radio().TxHistory()), "node %s TX", n.Name())
		assert.Equal(t, rxEvents[nodeIdx], len(n.Radio().RxHistory()), "node %s RX", n.Name())
	}
}

// verifyRadioPacket checks that an event carries the expected data packet
// and status.
func verifyRadioPacket(t *testing.T, event radio.PacketEvent, data *packet.DataPacket, status radio.Status) {
	assert.Equal(t, status, event.Status)
	if data == nil {
		assert.Nil(t, event.Packet)
	} else {
		assert.NotNil(t, event.Packet)
		assert.True(t, event.Packet.Data().Equal(data))
	}
}

func TestUnicast(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +--- RX ---+
	// B : +== TX A ==+
	// C :
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration+epsilon).Done(),
			tw.radio(1).Transmit(testDuration, tw.packets["B->A"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 1, 0}, []int{1, 0, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], tw.packets["B->A"], radio.StatusSuccessRX)
	assert.Equal(t, testDuration, tw.radio(0).RxHistory()[0].Time)
	verifyRadioPacket(t, tw.radio(1).TxHistory()[0], tw.packets["B->A"], radio.StatusSuccessTX)
	assert.Equal(t, testDuration, tw.radio(1).TxHistory()[0].Time)
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestBroadcast(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +--- RX ---+
	// B : +--- RX ---+
	// C : += TX ALL =+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration+epsilon).Done(),
			tw.radio(1).Receive(testDuration+epsilon).Done(),
			tw.radio(2).Transmit(testDuration, tw.packets["C->X"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 0, 1}, []int{1, 1, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], tw.packets["C->X"], radio.StatusSuccessRX)
	verifyRadioPacket(t, tw.radio(1).RxHistory()[0], tw.packets["C->X"], radio.StatusSuccessRX)
	verifyRadioPacket(t, tw.radio(2).TxHistory()[0], tw.packets["C->X"], radio.StatusSuccessTX)
	assert.Equal(t, testDuration, tw.radio(0).RxHistory()[0].Time)
	assert.Equal(t, testDuration, tw.radio(1).RxHistory()[0].Time)
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestListening(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +--- RX ---+
	// B :
	// C : +--- RX ---+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration).Done(),
			tw.radio(2).Receive(testDuration).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 0, 0}, []int{1, 0, 1})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], nil, radio.StatusNothingRX)
	verifyRadioPacket(t, tw.radio(2).RxHistory()[0], nil, radio.StatusNothingRX)
	assert.Equal(t, testDuration, tw.radio(0).RxHistory()[0].Time)
	assert.Equal(t, testDuration, tw.radio(2).RxHistory()[0].Time)
}

func TestNotListening(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +== TX B ==+
	// B :
	// C : +== TX A ==+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Transmit(testDuration, tw.packets["A->B"]).Done(),
			tw.radio(2).Transmit(testDuration, tw.packets["C->A"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{1, 0, 1}, []int{1, 1, 0})
	// Drops are logged at the moment of arrival.
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], tw.packets["C->A"], radio.StatusDroppedMode)
	assert.Equal(t, 0.0, tw.radio(0).RxHistory()[0].Time)
	verifyRadioPacket(t, tw.radio(1).RxHistory()[0], tw.packets["A->B"], radio.StatusDroppedMode)
	assert.Equal(t, 0.0, tw.radio(1).RxHistory()[0].Time)

	verifyRadioPacket(t, tw.radio(0).TxHistory()[0], tw.packets["A->B"], radio.StatusSuccessTX)
	verifyRadioPacket(t, tw.radio(2).TxHistory()[0], tw.packets["C->A"], radio.StatusSuccessTX)
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestCollision(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +--- RX ---+
	// B : +== TX A ==+
	// C : +== TX A ==+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration+epsilon).Done(),
			tw.radio(1).Transmit(testDuration, tw.packets["B->A"]).Done(),
			tw.radio(2).Transmit(testDuration, tw.packets["C->A"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 1, 1}, []int{1, 0, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], nil, radio.StatusNothingRX)
	assert.Equal(t, testDuration+epsilon, tw.radio(0).RxHistory()[0].Time)
	verifyRadioPacket(t, tw.radio(1).TxHistory()[0], tw.packets["B->A"], radio.StatusSuccessTX)
	verifyRadioPacket(t, tw.radio(2).TxHistory()[0], tw.packets["C->A"], radio.StatusSuccessTX)

	collisions := tw.world.Collisions()
	assert.Equal(t, 1, len(collisions))
	// The interrupt lands at the moment the second frame arrives.
	expected := CollisionEvent{
		Time:    0,
		PacketA: packet.NewRadioPacket(tw.packets["B->A"], testDuration, 1.0),
		PacketB: packet.NewRadioPacket(tw.packets["C->A"], testDuration, 1.0),
	}
	assert.True(t, collisions[0].Equal(expected))
	// Commutative equality: the packet pair is an unordered set.
	swapped := CollisionEvent{
		Time:    0,
		PacketA: expected.PacketB,
		PacketB: expected.PacketA,
	}
	assert.True(t, collisions[0].Equal(swapped))
}

func TestRSSIGate(t *testing.T) {
	tw := newTestWorld()
	tw.radio(0).SetThresholdRSSI(2.0)

	//     0          5
	// A : +--- RX ---+
	// B :
	// C : +== TX A ==+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration+epsilon).Done(),
			tw.radio(2).Transmit(testDuration, tw.packets["C->A"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 0, 1}, []int{2, 0, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], tw.packets["C->A"], radio.StatusDroppedRSSI)
	assert.Equal(t, 0.0, tw.radio(0).RxHistory()[0].Time)
	verifyRadioPacket(t, tw.radio(0).RxHistory()[1], nil, radio.StatusNothingRX)
	assert.Equal(t, testDuration+epsilon, tw.radio(0).RxHistory()[1].Time)
	verifyRadioPacket(t, tw.radio(2).TxHistory()[0], tw.packets["C->A"], radio.StatusSuccessTX)
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestPartialOverlap(t *testing.T) {
	tw := newTestWorld()

	//     0          5
	// A : +--- RX ---+
	// B :
	// C :      +== TX A ==+
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		rx := tw.radio(0).Receive(testDuration)
		_, err := p.WaitAny(rx.Done(), p.Env().Timeout(2.5))
		assert.Nil(t, err)
		_, err = p.Wait(tw.radio(2).Transmit(testDuration, tw.packets["C->A"]).Done())
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	// A leaves RX at t=5 while the frame is still airborne: the delivery
	// tracker is interrupted and nothing is received.
	tw.verifyNumEvents(t, []int{0, 0, 1}, []int{1, 0, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], nil, radio.StatusNothingRX)
	assert.Equal(t, testDuration, tw.radio(0).RxHistory()[0].Time)
	verifyRadioPacket(t, tw.radio(2).TxHistory()[0], tw.packets["C->A"], radio.StatusSuccessTX)
	assert.Equal(t, 7.5, tw.radio(2).TxHistory()[0].Time)
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestStopHaltsRouting(t *testing.T) {
	tw := newTestWorld()

	// After teardown the medium routes nothing: a transmission completes at
	// the sender but never reaches the listening receiver's gate.
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		assert.Nil(t, p.Sleep(1))
		tw.world.Stop()
		_, err := p.WaitAll(
			tw.radio(0).Receive(testDuration+epsilon).Done(),
			tw.radio(1).Transmit(testDuration, tw.packets["B->A"]).Done(),
		)
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 1, 0}, []int{1, 0, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], nil, radio.StatusNothingRX)
	verifyRadioPacket(t, tw.radio(1).TxHistory()[0], tw.packets["B->A"], radio.StatusSuccessTX)
	assert.Nil(t, tw.radio(0).PendingDelivery())
	assert.Equal(t, 0, len(tw.world.Collisions()))
}

func TestBroadcastReachesEveryOtherNode(t *testing.T) {
	tw := newTestWorld()

	// All non-source nodes are off: each must still log a delivery attempt,
	// so the recipient set of a broadcast is exactly nodes minus source.
	tw.env.Process("run", func(p *kernel.Proc) interface{} {
		_, err := p.Wait(tw.radio(2).Transmit(testDuration, tw.packets["C->X"]).Done())
		assert.Nil(t, err)
		return nil
	})
	tw.env.RunAll()

	tw.verifyNumEvents(t, []int{0, 0, 1}, []int{1, 1, 0})
	verifyRadioPacket(t, tw.radio(0).RxHistory()[0], tw.packets["C->X"], radio.StatusDroppedMode)
	verifyRadioPacket(t, tw.radio(1).RxHistory()[0], tw.packets["C->X"], radio.StatusDroppedMode)
}
