// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache - the envelope layer over the storage pools
//
//  ***** Envelope *****
//
//  every cached value is stored as:
//      { "data": <any JSON>, "timestamp": <integer epoch ms> }
//
//  the timestamp is the write time and is only ever used for TTL
//  comparison; an envelope is replaced wholesale on write, never
//  mutated in place
//
//  ***** Behaviour *****
//
//  corrupt or unreadable entries are treated as cache misses, not
//  errors: this layer always favours availability over correctness
//
//  there is no eviction policy; entries live until overwritten or
//  explicitly removed, except that a periodic cleaner trims API cache
//  envelopes past their retention age
package cache
