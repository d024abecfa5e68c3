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
	"container/heap"
)

// wake priorities. Task starts and interrupt deliveries run ahead of timer
// firings and event wake-ups due at the same instant.
const (
	prioUrgent = 0
	prioNormal = 1
)

type wakeKind uint8

const (
	wakeStart wakeKind = iota
	wakeEvent
	wakeInterrupt
	wakeTrigger
)

type wakeup struct {
	time float64
	prio int
	seq  uint64
	kind wakeKind

	proc  *Proc
	gen   uint64
	value interface{}
	event *Event
}

// wakeQueue orders pending wake-ups by (time, priority, insertion sequence),
// giving FIFO resumption for wake-ups due at the same instant.
type wakeQueue struct {
	q []*wakeup
}

func (wq wakeQueue) Len() int {
	return len(wq.q)
}

func (wq wakeQueue) Less(i, j int) bool {
	a, b := wq.q[i], wq.q[j]
	if a.time != b.time {
		return a.time < b.time
	}
	if a.prio != b.prio {
		return a.prio < b.prio
	}
	return a.seq < b.seq
}

func (wq wakeQueue) Swap(i, j int) {
	wq.q[i], wq.q[j] = wq.q[j], wq.q[i]
}

func (wq *wakeQueue) Push(x interface{}) {
	wq.q = append(wq.q, x.(*wakeup))
}

func (wq *wakeQueue) Pop() (elem interface{}) {
	eqlen := len(wq.q)
	elem = wq.q[eqlen-1]
	wq.q = wq.q[:eqlen-1]
	return
}

func (wq wakeQueue) NextTime() float64 {
	return wq.q[0].time
}

func (wq *wakeQueue) PopNext() *wakeup {
	return heap.Pop(wq).(*wakeup)
}

func (wq *wakeQueue) Add(w *wakeup) {
	heap.Push(wq, w)
}

func newWakeQueue() *wakeQueue {
	wq := &wakeQueue{
		q: []*wakeup{},
	}
	heap.Init(wq)
	return wq
}
