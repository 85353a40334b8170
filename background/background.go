// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of background processes with a
// common shutdown
package background

// T - handle type for the stop
type T struct {
	finished chan struct{}
	shutdown chan struct{}
	log      []Process
}

// Process - type signature for background process
// and list of processes to start
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
// all with the same arg value
func Start(processes Processes, args interface{}) *T {

	register := &T{
		finished: make(chan struct{}),
		shutdown: make(chan struct{}),
		log:      processes,
	}

	// start each background
	for _, p := range processes {
		go func(p Process, shutdown <-chan struct{}, finished chan<- struct{}) {
			// pass the shutdown to the Run loop for shutdown signalling
			p.Run(args, shutdown)
			// flag for the stop routine to wait for shutdown
			finished <- struct{}{}
		}(p, register.shutdown, register.finished)
	}
	return register
}

// Stop - stop a set of background processes
func (t *T) Stop() {

	if nil == t {
		return
	}

	// shutdown all background tasks
	close(t.shutdown)

	// wait for all finished
	for range t.log {
		<-t.finished
	}
}
