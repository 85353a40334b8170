// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connectivity_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/yumvi-pay/remitd/background"
	"github.com/yumvi-pay/remitd/connectivity"
)

func TestMain(m *testing.M) {
	curPath, _ := os.Getwd()
	_ = logger.Initialise(logger.Configuration{
		Directory: curPath,
		File:      "connectivity_test.log",
		Size:      50000,
		Count:     10,
		Levels:    map[string]string{logger.DefaultTag: "critical"},
	})
	rc := m.Run()
	logger.Finalise()
	_ = os.Remove(filepath.Join(curPath, "connectivity_test.log"))
	os.Exit(rc)
}

func TestModeChanges(t *testing.T) {
	s := connectivity.New()

	assert.True(t, s.Is(connectivity.Online), "initial mode must be online")
	assert.False(t, s.IsOffline(), "initial state must not be offline")

	s.Set(connectivity.Offline)
	assert.True(t, s.IsOffline(), "detected offline must report offline")

	s.Set(connectivity.ForcedOffline)
	assert.True(t, s.IsOffline(), "forced offline must report offline")
	assert.True(t, s.Is(connectivity.ForcedOffline), "mode mismatch")

	s.Set(connectivity.Online)
	assert.False(t, s.IsOffline(), "online must not report offline")
}

func TestSubscribe(t *testing.T) {
	s := connectivity.New()
	ch := s.Subscribe()

	s.Set(connectivity.Offline)
	s.Set(connectivity.Online)
	s.Set(connectivity.Online) // no change, no notification

	assert.Equal(t, connectivity.Offline, <-ch, "first notification mismatch")
	assert.Equal(t, connectivity.Online, <-ch, "second notification mismatch")

	select {
	case m := <-ch:
		t.Fatalf("unexpected notification: %s", m)
	default:
	}
}

func TestWatcherMarkerFile(t *testing.T) {
	dir, err := os.Getwd()
	assert.Nil(t, err, "getwd error")
	marker := filepath.Join(dir, "offline-mode-test-marker")
	_ = os.Remove(marker)
	defer os.Remove(marker)

	s := connectivity.New()
	w, err := connectivity.NewWatcher(s, marker)
	assert.Nil(t, err, "new watcher error")

	processes := background.Processes{w}
	p := background.Start(processes, nil)
	defer p.Stop()

	// creating the marker forces offline mode
	f, err := os.Create(marker)
	assert.Nil(t, err, "create marker error")
	f.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Is(connectivity.ForcedOffline) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, s.Is(connectivity.ForcedOffline), "marker create must force offline")

	// removing it releases the forced state
	_ = os.Remove(marker)
	deadline = time.Now().Add(2 * time.Second)
	for !s.Is(connectivity.Online) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, s.Is(connectivity.Online), "marker remove must restore online")
}

func TestWatcherExistingMarker(t *testing.T) {
	dir, err := os.Getwd()
	assert.Nil(t, err, "getwd error")
	marker := filepath.Join(dir, "offline-mode-preexisting")
	f, err := os.Create(marker)
	assert.Nil(t, err, "create marker error")
	f.Close()
	defer os.Remove(marker)

	s := connectivity.New()
	_, err = connectivity.NewWatcher(s, marker)
	assert.Nil(t, err, "new watcher error")

	assert.True(t, s.Is(connectivity.ForcedOffline), "pre-existing marker must force offline at startup")
}
