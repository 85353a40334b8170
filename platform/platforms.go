// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package platform - names of the supported runtime platforms
//
// The platform is fixed once at process start and decides which
// storage backend holds local data: the native platform has a durable
// on-device store, the web platform only has volatile storage.
package platform

// names of all platforms
const (
	Native = "native"
	Web    = "web"
	Local  = "local"
)

// Valid - validate a platform name
func Valid(name string) bool {
	switch name {
	case Native, Web, Local:
		return true
	default:
		return false
	}
}

// Durable - true if the platform has a persistent local store
func Durable(name string) bool {
	return Native == name
}
