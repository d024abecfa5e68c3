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

// SharedEvent is a slot holding the current one-shot event, swapped on every
// completion. One-shot events are consumed by triggering; if two tasks held
// the same event directly, the reactivating side would create a replacement
// the other side never sees. Long-lived holders read Current() each time they
// park and always observe a live handle.
type SharedEvent struct {
	env *Env
	ev  *Event
}

// NewSharedEvent creates a shared event holding a fresh one-shot.
func NewSharedEvent(env *Env) *SharedEvent {
	return &SharedEvent{
		env: env,
		ev:  env.NewEvent(),
	}
}

// Current returns the live one-shot event to park on.
func (se *SharedEvent) Current() *Event {
	return se.ev
}

// Reactivate wakes everyone parked on the current one-shot with value, and
// re-arms the slot with a fresh event. Tasks that query Current afterwards,
// within the same instant or later, see the fresh one-shot.
func (se *SharedEvent) Reactivate(value interface{}) {
	old := se.ev
	se.ev = se.env.NewEvent()
	old.Succeed(value)
}
