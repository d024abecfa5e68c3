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

package schedule

import (
	"github.com/salcardamone/network/kernel"
	"github.com/salcardamone/network/logger"
	"github.com/salcardamone/network/packet"
	"github.com/salcardamone/network/types"
)

// TransmitFunc spawns a transmission of the given data packet and airtime.
type TransmitFunc func(duration float64, data *packet.DataPacket) *kernel.Proc

// ReceiveFunc spawns a receive window of the given duration; the task
// completes with the received DataPacket or nil.
type ReceiveFunc func(duration float64) *kernel.Proc

// HandlePacketFunc consumes the outcome of a completed receive window.
type HandlePacketFunc func(pkt *packet.DataPacket)

// Event records one planned schedule firing, materialized when the schedule
// is added.
type Event struct {
	Start float64
	Stop  float64
	Mode  types.RadioMode
}

// Manager owns a node's schedules and drives its radio through them. A
// long-running task waits for the earliest due schedule and enacts it via
// the injected callbacks; dynamic insertion preempts the wait so an earlier
// newcomer neither starves nor fires out of order.
type Manager struct {
	env *kernel.Env

	transmitCb     TransmitFunc
	receiveCb      ReceiveFunc
	handlePacketCb HandlePacketFunc

	schedules []*Schedule
	eventLog  []Event
	// awaiting wakes the manager out of quiescence when the first schedule
	// arrives.
	awaiting *kernel.SharedEvent
	proc     *kernel.Proc
}

// NewManager creates a manager and spawns its task. As designed, the
// transmit and receive callbacks are a radio's Transmit and Receive, and the
// handle-packet callback belongs to the protocol layer above.
func NewManager(env *kernel.Env, transmitCb TransmitFunc, receiveCb ReceiveFunc, handlePacketCb HandlePacketFunc) *Manager {
	m := &Manager{
		env:            env,
		transmitCb:     transmitCb,
		receiveCb:      receiveCb,
		handlePacketCb: handlePacketCb,
		awaiting:       kernel.NewSharedEvent(env),
	}
	m.proc = env.Process("schedule-manager", m.run)
	return m
}

// Add hands a schedule to the manager. The manager task is preempted so the
// newcomer is considered for the next firing even if an older schedule was
// already being awaited.
func (m *Manager) Add(s *Schedule) bool {
	wasAwaitingSchedules := len(m.schedules) == 0

	m.schedules = append(m.schedules, s)
	m.proc.Interrupt(nil)

	for k := 0; k < s.Num(); k++ {
		start := s.Start() + float64(k)*s.Delay()
		m.eventLog = append(m.eventLog, Event{
			Start: start,
			Stop:  start + s.Duration(),
			Mode:  s.Mode(),
		})
	}

	if wasAwaitingSchedules {
		m.awaiting.Reactivate(nil)
	}
	logger.Debugf("schedule was added at time %v: %v", m.env.Now(), s)
	logger.Debugf("%d schedule/s are now held", len(m.schedules))

	return true
}

// EventLog returns the (start, stop, mode) entries of every added schedule.
func (m *Manager) EventLog() []Event {
	log := make([]Event, len(m.eventLog))
	copy(log, m.eventLog)
	return log
}

// Schedules returns the schedules still held by the manager.
func (m *Manager) Schedules() []*Schedule {
	held := make([]*Schedule, len(m.schedules))
	copy(held, m.schedules)
	return held
}

// nextActiveSchedule picks the active schedule with the earliest due time;
// the first-inserted wins ties. Suspended schedules are skipped.
func (m *Manager) nextActiveSchedule() *Schedule {
	var next *Schedule
	var nextDue float64
	for _, s := range m.schedules {
		if s.State() != types.ScheduleActive {
			continue
		}
		due, err := s.NextTime()
		if err != nil {
			logger.Panicf("held schedule has expired: %v", s)
		}
		if next == nil || due < nextDue {
			next = s
			nextDue = due
		}
	}
	return next
}

func (m *Manager) remove(s *Schedule) {
	for i, held := range m.schedules {
		if held == s {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return
		}
	}
}

// run waits for the next schedule to come due, then enacts it through the
// callbacks. Add preempts any wait here, restarting selection.
func (m *Manager) run(p *kernel.Proc) interface{} {
	for {
		if len(m.schedules) == 0 {
			if _, err := p.Wait(m.awaiting.Current()); err != nil {
				continue
			}
		}

		next := m.nextActiveSchedule()
		if next == nil {
			// Only suspended schedules remain.
			if _, err := p.Wait(m.awaiting.Current()); err != nil {
				continue
			}
			continue
		}
		due, err := next.NextTime()
		if err != nil {
			logger.Panicf("selected schedule has expired: %v", next)
		}

		if err := p.Sleep(due - p.Now()); err != nil {
			logger.Debugf("schedule manager run task was preempted")
			continue
		}

		// A schedule already due when added fires now.
		if p.Now() >= due {
			switch next.Mode() {
			case types.RadioTX:
				pkt, err := next.Event()
				logger.PanicfIfError(err, "transmit schedule yielded no event: %v", err)
				m.transmitCb(next.Duration(), pkt)
			case types.RadioRX:
				_, err := next.Event()
				logger.PanicfIfError(err, "receive schedule yielded no event: %v", err)
				rx := m.receiveCb(next.Duration())
				// An Add during the window does not abandon it: the window's
				// outcome still reaches the handler, and selection restarts
				// once the window has closed.
				v, waitErr := p.Wait(rx.Done())
				for waitErr != nil {
					logger.Debugf("schedule manager preempted while awaiting RX completion")
					v, waitErr = p.Wait(rx.Done())
				}
				pkt, _ := v.(*packet.DataPacket)
				m.handlePacketCb(pkt)
			}

			if next.State() == types.ScheduleComplete {
				m.remove(next)
			}
		}
	}
}
