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

// Package kernel implements the cooperative discrete-event executor driving
// the simulation: a logical clock, suspendable tasks, one-shot events,
// timeouts and interrupt signalling. There is no preemption; control
// transfers only at a task's blocking calls.
package kernel

import (
	"math"
)

// Env is a simulation environment: the logical clock plus the queue of
// pending wake-ups. All tasks of one simulation share a single Env and
// execute hand-over-hand, so no locking is needed on simulation state.
type Env struct {
	now     float64
	seq     uint64
	queue   *wakeQueue
	yielded chan struct{}
	current *Proc
}

// NewEnv creates an environment with the clock at zero.
func NewEnv() *Env {
	return &Env{
		queue:   newWakeQueue(),
		yielded: make(chan struct{}),
	}
}

// Now returns the current simulation time.
func (env *Env) Now() float64 {
	return env.now
}

// Process spawns a new task. Its first execution slice is scheduled at the
// current instant, ahead of timer firings due then.
func (env *Env) Process(name string, body ProcBody) *Proc {
	p := &Proc{
		env:    env,
		name:   name,
		resume: make(chan *wakeup),
		alive:  true,
	}
	p.done = env.NewEvent()
	env.schedule(env.now, prioUrgent, wakeStart, p, 0, nil, nil)
	go p.main(body)
	return p
}

func (env *Env) schedule(t float64, prio int, kind wakeKind, proc *Proc, gen uint64, value interface{}, ev *Event) {
	env.seq++
	env.queue.Add(&wakeup{
		time:  t,
		prio:  prio,
		seq:   env.seq,
		kind:  kind,
		proc:  proc,
		gen:   gen,
		value: value,
		event: ev,
	})
}

// Run processes wake-ups in due order until the queue is exhausted or the
// next wake-up lies beyond until, then advances the clock to until. Tasks
// parked on events that never trigger simply stay parked.
func (env *Env) Run(until float64) {
	for env.queue.Len() > 0 && env.queue.NextTime() <= until {
		w := env.queue.PopNext()
		if w.time > env.now {
			env.now = w.time
		}
		switch w.kind {
		case wakeTrigger:
			// A timeout firing; wakes whoever parked on it.
			w.event.Succeed(w.value)
		case wakeStart:
			env.step(w)
		case wakeInterrupt:
			if w.proc.alive && w.proc.waiting {
				env.step(w)
			}
		case wakeEvent:
			// Skip wake-ups for waits the task has already abandoned.
			if w.proc.alive && w.proc.waiting && w.gen == w.proc.waitGen {
				env.step(w)
			}
		}
	}
	if !math.IsInf(until, 1) && until > env.now {
		env.now = until
	}
}

// RunAll runs until no timed wake-ups remain.
func (env *Env) RunAll() {
	env.Run(math.Inf(1))
}

// step hands control to the woken task and blocks until it suspends again or
// finishes.
func (env *Env) step(w *wakeup) {
	env.current = w.proc
	w.proc.resume <- w
	<-env.yielded
	env.current = nil
}
