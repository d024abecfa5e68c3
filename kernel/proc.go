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
	"fmt"

	"github.com/salcardamone/network/logger"
)

// Interrupt is returned from a blocking call when another task interrupts the
// waiting one. Cause is an opaque value for the recipient to examine.
type Interrupt struct {
	Cause interface{}
}

func (i *Interrupt) Error() string {
	return fmt.Sprintf("interrupted: %v", i.Cause)
}

// ProcBody is the entry function of a task. Its return value becomes the
// value of the task's completion event.
type ProcBody func(p *Proc) interface{}

// Proc is a suspendable task. It runs on its own goroutine, but the kernel
// hands control off strictly: exactly one task (or the scheduler) executes at
// a time, and control transfers only at the blocking calls below.
type Proc struct {
	env     *Env
	name    string
	resume  chan *wakeup
	alive   bool
	waiting bool
	waitGen uint64
	done    *Event
}

// Name returns the task's diagnostic name.
func (p *Proc) Name() string {
	return p.name
}

// Now returns the current simulation time.
func (p *Proc) Now() float64 {
	return p.env.now
}

// Env returns the owning environment.
func (p *Proc) Env() *Env {
	return p.env
}

// IsAlive reports whether the task body has not yet returned.
func (p *Proc) IsAlive() bool {
	return p.alive
}

// Done returns the task's completion event; it triggers with the body's
// return value when the task finishes.
func (p *Proc) Done() *Event {
	return p.done
}

// Interrupt delivers cause to the task at its current (or next) suspension
// point; the pending blocking call there returns an *Interrupt error.
// Interrupting a finished task is a no-op.
func (p *Proc) Interrupt(cause interface{}) {
	if !p.alive {
		return
	}
	if p == p.env.current {
		logger.Panicf("task %s may not interrupt itself", p.name)
	}
	p.env.schedule(p.env.now, prioUrgent, wakeInterrupt, p, 0, cause, nil)
}

// Sleep suspends the task for delay ticks. It returns nil after the full
// delay, or an *Interrupt if another task interrupted the sleep.
func (p *Proc) Sleep(delay float64) error {
	_, err := p.Wait(p.env.Timeout(delay))
	return err
}

// Wait suspends the task until ev triggers and returns its value.
func (p *Proc) Wait(ev *Event) (interface{}, error) {
	res, err := p.WaitAny(ev)
	if err != nil {
		return nil, err
	}
	return res[ev], nil
}

// WaitAny suspends the task until at least one of the events triggers. It
// returns the value of every event that has triggered by the time the task
// resumes, keyed by event.
func (p *Proc) WaitAny(events ...*Event) (map[*Event]interface{}, error) {
	p.checkRunning()
	p.waitGen++
	for _, ev := range events {
		ev.await(p, p.waitGen)
	}
	w := p.park()
	if w.kind == wakeInterrupt {
		return nil, &Interrupt{Cause: w.value}
	}
	res := make(map[*Event]interface{}, len(events))
	for _, ev := range events {
		if ev.triggered {
			res[ev] = ev.value
		}
	}
	return res, nil
}

// WaitAll suspends the task until every event has triggered.
func (p *Proc) WaitAll(events ...*Event) (map[*Event]interface{}, error) {
	p.checkRunning()
	for {
		var remaining []*Event
		for _, ev := range events {
			if !ev.triggered {
				remaining = append(remaining, ev)
			}
		}
		if len(remaining) == 0 {
			res := make(map[*Event]interface{}, len(events))
			for _, ev := range events {
				res[ev] = ev.value
			}
			return res, nil
		}
		p.waitGen++
		for _, ev := range remaining {
			ev.await(p, p.waitGen)
		}
		w := p.park()
		if w.kind == wakeInterrupt {
			return nil, &Interrupt{Cause: w.value}
		}
	}
}

// park yields control back to the scheduler until a wake-up is delivered.
func (p *Proc) park() *wakeup {
	p.waiting = true
	p.env.yielded <- struct{}{}
	w := <-p.resume
	p.waiting = false
	return w
}

func (p *Proc) checkRunning() {
	if p.env.current != p {
		logger.Panicf("task %s may only block from its own body", p.name)
	}
}

// main is the task goroutine: it waits for the start wake-up, runs the body
// and completes the done event with its return value.
func (p *Proc) main(body ProcBody) {
	<-p.resume
	v := body(p)
	p.alive = false
	p.done.Succeed(v)
	p.env.yielded <- struct{}{}
}
