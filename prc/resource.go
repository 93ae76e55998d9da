// Copyright 2019 The PatCC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prc implements the processing resource: enumeration of the
// processing units across MPI ranks and threads, and the send/receive and
// reduction ports the consistency protocol runs on
package prc

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Provider exposes process and thread discovery to the resource
type Provider interface {
	Rank() int        // process id
	Size() int        // number of processes
	Hostname() string // host of this process
	PoolSize() int    // number of processing units hosted by this process
}

// MpiProvider discovers ranks via MPI; every rank hosts NumThreads units
// (homogeneous pools, as with a fixed OpenMP pool size)
type MpiProvider struct {
	NumThreads int
}

// Rank returns the MPI rank, or 0 when MPI is off
func (o *MpiProvider) Rank() int {
	if mpi.IsOn() {
		return mpi.Rank()
	}
	return 0
}

// Size returns the MPI size, or 1 when MPI is off
func (o *MpiProvider) Size() int {
	if mpi.IsOn() {
		return mpi.Size()
	}
	return 1
}

// Hostname returns this process' host name
func (o *MpiProvider) Hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

// PoolSize returns the number of units per process
func (o *MpiProvider) PoolSize() int {
	if o.NumThreads < 1 {
		return 1
	}
	return o.NumThreads
}

// LocalProvider hosts all units in a single process; used by tests and
// serial runs
type LocalProvider struct {
	NumUnits int
}

// Rank of the only process
func (o *LocalProvider) Rank() int { return 0 }

// Size is one process
func (o *LocalProvider) Size() int { return 1 }

// Hostname of the only process
func (o *LocalProvider) Hostname() string { return "localhost" }

// PoolSize returns the number of units
func (o *LocalProvider) PoolSize() int {
	if o.NumUnits < 1 {
		return 1
	}
	return o.NumUnits
}

// Unit is one processing unit: its global id and its place in the
// (rank, thread) enumeration
type Unit struct {
	Id       int
	ProcId   int
	ThreadId int
	Hostname string
}

// Resource enumerates the processing units in ascending (rank, thread)
// order and routes messages and reductions for them
type Resource struct {
	Units     []*Unit
	LocalProc int
	NumProcs  int
	msn       Messenger
	red       Reducer
}

// NewResource builds the unit enumeration from the provider and attaches
// the given messenger and reducer
func NewResource(p Provider, msn Messenger, red Reducer) (o *Resource) {
	o = new(Resource)
	o.LocalProc = p.Rank()
	o.NumProcs = p.Size()
	o.msn = msn
	o.red = red
	pool := p.PoolSize()
	id := 0
	for proc := 0; proc < o.NumProcs; proc++ {
		for th := 0; th < pool; th++ {
			host := ""
			if proc == o.LocalProc {
				host = p.Hostname()
			}
			o.Units = append(o.Units, &Unit{Id: id, ProcId: proc, ThreadId: th, Hostname: host})
			id++
		}
	}
	return
}

// NumTotalUnits returns the number of processing units over all processes
func (o *Resource) NumTotalUnits() int {
	return len(o.Units)
}

// Unit returns the unit with global id
func (o *Resource) Unit(id int) *Unit {
	if id < 0 || id >= len(o.Units) {
		chk.Panic("unit id %d out of range [0, %d)", id, len(o.Units))
	}
	return o.Units[id]
}

// IsLocal reports whether unit id lives on this process
func (o *Resource) IsLocal(id int) bool {
	return o.Unit(id).ProcId == o.LocalProc
}

// LocalUnitIds returns the ids of the units hosted by this process
func (o *Resource) LocalUnitIds() (res []int) {
	for _, u := range o.Units {
		if u.ProcId == o.LocalProc {
			res = append(res, u.Id)
		}
	}
	return
}

// Send routes an asynchronous message between units; same-process pairs use
// the in-memory queue, cross-process pairs the network messenger. The buffer
// is owned by the messenger until Wait returns.
func (o *Resource) Send(from, to, tag int, vals []float64) {
	o.msn.Send(o.Unit(from), o.Unit(to), tag, vals)
}

// Recv blocks until the message from unit `from` to unit `to` with the
// given tag arrives, and returns its payload
func (o *Resource) Recv(from, to, tag int) []float64 {
	return o.msn.Recv(o.Unit(from), o.Unit(to), tag)
}

// Wait blocks until all outstanding asynchronous sends completed
func (o *Resource) Wait() {
	o.msn.Wait()
}

// AllReduceMaxInt reduces x to the maximum over all processes
func (o *Resource) AllReduceMaxInt(x int) int {
	return o.red.AllReduceMaxInt(x)
}

// Barrier synchronizes all processes
func (o *Resource) Barrier() {
	o.red.Barrier()
}
