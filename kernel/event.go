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

package kernel

import (
	"github.com/salcardamone/network/logger"
)

type eventWaiter struct {
	proc *Proc
	gen  uint64
}

// Event is a one-shot completion. Tasks park on it with Wait/WaitAny/WaitAll;
// Succeed wakes every currently-parked waiter at the current instant. Waiting
// on an already-triggered event wakes immediately with the stored value.
type Event struct {
	env       *Env
	triggered bool
	value     interface{}
	waiters   []eventWaiter
}

// NewEvent creates an untriggered one-shot event.
func (env *Env) NewEvent() *Event {
	return &Event{env: env}
}

// Succeed triggers the event, carrying value to all waiters. Triggering an
// event twice is a caller bug.
func (ev *Event) Succeed(value interface{}) {
	if ev.triggered {
		logger.Panicf("event triggered twice")
	}
	ev.triggered = true
	ev.value = value
	for _, w := range ev.waiters {
		ev.env.schedule(ev.env.now, prioNormal, wakeEvent, w.proc, w.gen, ev.value, ev)
	}
	ev.waiters = nil
}

// Triggered reports whether the event has completed.
func (ev *Event) Triggered() bool {
	return ev.triggered
}

// Value returns the value the event completed with.
func (ev *Event) Value() interface{} {
	return ev.value
}

// await registers a parked task; a triggered event wakes it at the current
// instant instead.
func (ev *Event) await(p *Proc, gen uint64) {
	if ev.triggered {
		ev.env.schedule(ev.env.now, prioNormal, wakeEvent, p, gen, ev.value, ev)
		return
	}
	ev.waiters = append(ev.waiters, eventWaiter{proc: p, gen: gen})
}

// Timeout returns an event that triggers delay ticks from now. A non-positive
// delay resolves at the current instant.
func (env *Env) Timeout(delay float64) *Event {
	if delay < 0 {
		delay = 0
	}
	ev := env.NewEvent()
	env.schedule(env.now+delay, prioNormal, wakeTrigger, nil, 0, nil, ev)
	return ev
}
