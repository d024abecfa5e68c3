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
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/types"
)

func testRadioPacket(src, dest types.Identifier, rssi float64) *packet.RadioPacket {
	data := packet.NewDataPacket(src, dest, map[string]interface{}{"msg": "hi"})
	return packet.NewRadioPacket(data, 5, rssi)
}

func TestIntentToDeliverRequiresReceiveMode(t *testing.T) {
	env := kernel.NewEnv()
	r := New(env, "A")

	assert.Equal(t, types.RadioOff, r.Mode())
	assert.False(t, r.NotifyIntentToDeliver(testRadioPacket("B", "A", 1.0)))

	history := r.RxHistory()
	assert.Equal(t, 1, len(history))
	assert.Equal(t, StatusDroppedMode, history[0].Status)
	assert.Equal(t, 0.0, history[0].Time)
}

func TestIntentToDeliverGatesOnRSSI(t *testing.T) {
	env := kernel.NewEnv()
	r := New(env, "A")
	r.SetThresholdRSSI(2.0)

	env.Process("listen", func(p *kernel.Proc) interface{} {
		r.Receive(10)
		assert.Nil(t, p.Sleep(1))
		assert.Equal(t, types.RadioRX, r.Mode())
		assert.False(t, r.NotifyIntentToDeliver(testRadioPacket("B", "A", 1.0)))
		assert.True(t, r.NotifyIntentToDeliver(testRadioPacket("B", "A", 2.5)))
		return nil
	})
	env.RunAll()

	dropped := EventsWithStatus(r.RxHistory(), StatusDroppedRSSI)
	assert.Equal(t, 1, len(dropped))
	assert.Equal(t, 1.0, dropped[0].Time)
}

func TestTransmitLogsAtEndOfAirtime(t *testing.T) {
	env := kernel.NewEnv()
	r := New(env, "B")
	data := packet.NewDataPacket("B", "A", map[string]interface{}{"msg": "Hello from B!"})

	r.Transmit(5, data)
	env.RunAll()

	assert.Equal(t, types.RadioOff, r.Mode())
	history := r.TxHistory()
	assert.Equal(t, 1, len(history))
	assert.Equal(t, StatusSuccessTX, history[0].Status)
	assert.Equal(t, 5.0, history[0].Time)
	assert.True(t, history[0].Packet.Data().Equal(data))
	assert.Equal(t, 1.0, history[0].Packet.RSSI())
}

func TestEmptyReceiveWindowLogsNothingRX(t *testing.T) {
	env := kernel.NewEnv()
	r := New(env, "A")

	rx := r.Receive(5)
	env.RunAll()

	assert.False(t, rx.IsAlive())
	assert.Nil(t, rx.Done().Value())
	history := r.RxHistory()
	assert.Equal(t, 1, len(history))
	assert.Equal(t, StatusNothingRX, history[0].Status)
	assert.Equal(t, 5.0, history[0].Time)
	assert.Nil(t, history[0].Packet)
}

func TestReceiveConsumesDeliveredPacket(t *testing.T) {
	env := kernel.NewEnv()
	r := New(env, "A")
	delivered := testRadioPacket("B", "A", 1.0)

	rx := r.Receive(5 + 1e-3)
	env.Process("deliver", func(p *kernel.Proc) interface{} {
		assert.Nil(t, p.Sleep(5))
		r.ReceiveEvent().Reactivate(delivered)
		return nil
	})
	env.RunAll()

	got, ok := rx.Done().Value().(*packet.DataPacket)
	assert.True(t, ok)
	assert.True(t, got.Equal(delivered.Data()))

	// A successful window must not also log an empty-window event.
	history := r.RxHistory()
	assert.Equal(t, 1, len(history))
	assert.Equal(t, StatusSuccessRX, history[0].Status)
	assert.Equal(t, 5.0, history[0].Time)
}

func TestHistoryRingDropsOldest(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 250).Draw(t, "n")

		var ring eventRing
		for i := 0; i < n; i++ {
			ring.append(PacketEvent{Status: StatusNothingRX, Time: float64(i)})
		}

		events := ring.snapshot()
		if n <= historyCapacity {
			assert.Equal(t, n, len(events))
		} else {
			assert.Equal(t, historyCapacity, len(events))
			assert.Equal(t, float64(n-historyCapacity), events[0].Time)
		}
		if n > 0 {
			assert.Equal(t, float64(n-1), events[len(events)-1].Time)
		}
	})
}
