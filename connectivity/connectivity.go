// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package connectivity - the device connectivity state
//
// A single State instance is created at process start and handed to
// every component that needs to decide between network and cache.
// ForcedOffline is the user-set "offline mode": it wins over a
// detected online state until explicitly cleared.
package connectivity

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

// Mode - type to hold the connectivity mode
type Mode int

// all possible modes
const (
	Online        Mode = iota
	Offline       Mode = iota
	ForcedOffline Mode = iota
	maximum       Mode = iota
)

// subscriberSize - buffer for each subscriber channel; a full channel
// drops the notification rather than blocking the setter
const subscriberSize = 16

// State - the current connectivity mode and its subscribers
type State struct {
	sync.RWMutex
	log         *logger.L
	mode        Mode
	subscribers []chan Mode
}

// New - create the connectivity state, initially online
func New() *State {
	s := &State{
		log:  logger.New("connectivity"),
		mode: Online,
	}
	s.log.Info("starting…")
	return s
}

// Set - change mode and notify subscribers of the new mode
func (s *State) Set(mode Mode) {
	if mode < Online || mode >= maximum {
		logger.Panicf("connectivity.Set: invalid mode: %d", mode)
	}

	s.Lock()
	if mode == s.mode {
		s.Unlock()
		return
	}
	previous := s.mode
	s.mode = mode
	subscribers := s.subscribers
	s.Unlock()

	s.log.Infof("mode change: %s to %s", previous, mode)

	for _, ch := range subscribers {
		select {
		case ch <- mode:
		default:
			s.log.Warn("subscriber channel full, notification dropped")
		}
	}
}

// Is - check the current mode
func (s *State) Is(mode Mode) bool {
	s.RLock()
	defer s.RUnlock()
	return mode == s.mode
}

// Mode - read the current mode
func (s *State) Mode() Mode {
	s.RLock()
	defer s.RUnlock()
	return s.mode
}

// IsOffline - true when no network call should be made,
// either because the device is offline or offline mode is forced
func (s *State) IsOffline() bool {
	s.RLock()
	defer s.RUnlock()
	return Offline == s.mode || ForcedOffline == s.mode
}

// Subscribe - register a channel that receives every mode change
//
// notifications are dropped, not blocked on, if the subscriber lags
func (s *State) Subscribe() <-chan Mode {
	ch := make(chan Mode, subscriberSize)
	s.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.Unlock()
	return ch
}

// current mode represented as a string
func (mode Mode) String() string {
	switch mode {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	case ForcedOffline:
		return "ForcedOffline"
	default:
		return "*Unknown*"
	}
}
