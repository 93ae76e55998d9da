// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Messenger moves float64 payloads between processing units. Sends are
// asynchronous; receives block. Per (sender, receiver, tag) channel the
// delivery order matches the send order.
type Messenger interface {
	Send(from, to *Unit, tag int, vals []float64)
	Recv(from, to *Unit, tag int) []float64
	Wait()
}

// Reducer runs the collective reductions of the consistency loop
type Reducer interface {
	AllReduceMaxInt(x int) int
	Barrier()
}

// msgKey identifies a unit-to-unit channel
type msgKey struct {
	from int
	to   int
	tag  int
}

// QueueMessenger is the intra-process path: a thread-local queue keyed by
// (sender, receiver, tag)
type QueueMessenger struct {
	mu    sync.Mutex
	cond  *sync.Cond
	queue map[msgKey][][]float64
}

// NewQueueMessenger returns an empty queue messenger
func NewQueueMessenger() (o *QueueMessenger) {
	o = new(QueueMessenger)
	o.queue = make(map[msgKey][][]float64)
	o.cond = sync.NewCond(&o.mu)
	return
}

// Send enqueues a copy of vals
func (o *QueueMessenger) Send(from, to *Unit, tag int, vals []float64) {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	k := msgKey{from.Id, to.Id, tag}
	o.mu.Lock()
	o.queue[k] = append(o.queue[k], cp)
	o.mu.Unlock()
	o.cond.Broadcast()
}

// Recv pops the next message on the channel, blocking until one arrives
func (o *QueueMessenger) Recv(from, to *Unit, tag int) []float64 {
	k := msgKey{from.Id, to.Id, tag}
	o.mu.Lock()
	defer o.mu.Unlock()
	for len(o.queue[k]) == 0 {
		o.cond.Wait()
	}
	msg := o.queue[k][0]
	o.queue[k] = o.queue[k][1:]
	return msg
}

// Wait is immediate: enqueued copies are already safe
func (o *QueueMessenger) Wait() {}

// SerialReducer is the single-process reduction
type SerialReducer struct{}

// AllReduceMaxInt of one process is the identity
func (o *SerialReducer) AllReduceMaxInt(x int) int { return x }

// Barrier of one process is immediate
func (o *SerialReducer) Barrier() {}

// MpiMessenger is the cross-process path built on the typed MPI sends. A
// message travels as a count followed by a payload whose first three values
// are (fromUnit, toUnit, tag); messages read off the rank channel for other
// units on this process are stashed until their receive happens.
type MpiMessenger struct {
	local   *QueueMessenger // same-process traffic bypasses MPI
	pending map[msgKey][][]float64
}

// NewMpiMessenger returns a messenger routing through MPI for remote units
func NewMpiMessenger() (o *MpiMessenger) {
	o = new(MpiMessenger)
	o.local = NewQueueMessenger()
	o.pending = make(map[msgKey][][]float64)
	return
}

// Send transmits the payload. Same-process destinations use the local
// queue; the MPI send buffers the message so the caller's slice is free on
// return.
func (o *MpiMessenger) Send(from, to *Unit, tag int, vals []float64) {
	if from.ProcId == to.ProcId {
		o.local.Send(from, to, tag, vals)
		return
	}
	buf := make([]float64, 0, 3+len(vals))
	buf = append(buf, float64(from.Id), float64(to.Id), float64(tag))
	buf = append(buf, vals...)
	mpi.SingleIntSend(len(buf), to.ProcId)
	mpi.DblSend(buf, to.ProcId)
}

// Recv blocks for the message from `from` to `to` with the given tag,
// draining the rank channel into the stash as needed
func (o *MpiMessenger) Recv(from, to *Unit, tag int) []float64 {
	if from.ProcId == to.ProcId {
		return o.local.Recv(from, to, tag)
	}
	want := msgKey{from.Id, to.Id, tag}
	for {
		if msgs := o.pending[want]; len(msgs) > 0 {
			o.pending[want] = msgs[1:]
			return msgs[0]
		}
		n := mpi.SingleIntRecv(from.ProcId)
		buf := make([]float64, n)
		mpi.DblRecv(buf, from.ProcId)
		chk.IntAssertLessThan(2, len(buf))
		got := msgKey{int(buf[0]), int(buf[1]), int(buf[2])}
		o.pending[got] = append(o.pending[got], buf[3:])
	}
}

// Wait returns once the buffered sends are out; the typed MPI sends used
// here complete before returning, so there is nothing left to await
func (o *MpiMessenger) Wait() {}

// MpiReducer reduces across all processes
type MpiReducer struct{}

// AllReduceMaxInt returns the maximum of x over all ranks
func (o *MpiReducer) AllReduceMaxInt(x int) int {
	if !mpi.IsOn() || mpi.Size() == 1 {
		return x
	}
	res := []int{x}
	w := []int{0}
	mpi.IntAllReduceMax(res, w)
	return res[0]
}

// Barrier synchronizes all ranks
func (o *MpiReducer) Barrier() {
	if mpi.IsOn() && mpi.Size() > 1 {
		mpi.Barrier()
	}
}
