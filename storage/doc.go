// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the local key-value store
//
//  ***** Pools *****
//
//  Pool                 Prefix          Contents
//  |___ Offline         offline_        cache envelopes for offline reads
//  |___ APICache        api_cache_      cache envelopes for API responses
//  |___ Transactions    transaction_    finalized transaction records
//  |___ Drafts          draft_          the canonical pending draft and its mirrors
//  |___ Queue           queue_          the durable offline request log
//  |___ Session         session_        per-session keys (always volatile)
//
// One backend is selected at Initialise from the platform name and
// never changes for the life of the process: the native platform gets
// a LevelDB store on disk, the web platform a volatile in-memory
// store.  The Session pool is memory-backed on every platform.
//
// All pool keys are strings, all values JSON-serialized text.
package storage
