// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/yumvi-pay/remitd/background"
	"github.com/yumvi-pay/remitd/connectivity"
	"github.com/yumvi-pay/remitd/fault"
	"github.com/yumvi-pay/remitd/platform"
	"github.com/yumvi-pay/remitd/queue"
	"github.com/yumvi-pay/remitd/storage"
)

const testingDirName = "testing-queue"

func TestMain(m *testing.M) {
	dirPath, _ := filepath.Abs(testingDirName)
	_ = os.RemoveAll(dirPath)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "queue.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(err)
	}
	if err := storage.Initialise(platform.Local, testingDirName); nil != err {
		panic(err)
	}

	result := m.Run()

	_ = storage.Finalise()
	logger.Finalise()
	_ = os.RemoveAll(dirPath)
	os.Exit(result)
}

func TestAddAndPendingOrder(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	q.Add("POST", "/transactions", nil, json.RawMessage(`{"amount":"100"}`))
	q.Add("PUT", "/recipients/7", nil, json.RawMessage(`{"name":"Ayuk"}`))
	q.Add("DELETE", "/recipients/9", nil, nil)

	pending := q.Pending()
	assert.Equal(t, 3, len(pending), "pending count mismatch")
	assert.Equal(t, "POST", pending[0].Method, "first entry mismatch")
	assert.Equal(t, "PUT", pending[1].Method, "second entry mismatch")
	assert.Equal(t, "DELETE", pending[2].Method, "third entry mismatch")
	assert.True(t, pending[0].Sequence < pending[1].Sequence, "sequence not monotonic")
	assert.Equal(t, 3, q.Depth(), "depth mismatch")
}

func TestDrainInOrderOnceEach(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	q.Add("POST", "/a", nil, nil)
	q.Add("POST", "/b", nil, nil)
	q.Add("POST", "/c", nil, nil)

	invoked := []string{}
	replayed, dropped := q.Drain(func(r queue.Request) error {
		invoked = append(invoked, r.URL)
		if "/b" == r.URL {
			return errors.New("backend rejected")
		}
		return nil
	})

	// b fails but does not block c; every entry runs exactly once
	assert.Equal(t, []string{"/a", "/b", "/c"}, invoked, "replay order mismatch")
	assert.Equal(t, 2, replayed, "replayed count mismatch")
	assert.Equal(t, 1, dropped, "dropped count mismatch")
	assert.Equal(t, 0, q.Depth(), "queue must be empty after drain")
}

func TestDrainStopsOnConnectionError(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	q.Add("POST", "/a", nil, nil)
	q.Add("POST", "/b", nil, nil)
	q.Add("POST", "/c", nil, nil)

	invoked := []string{}
	replayed, dropped := q.Drain(func(r queue.Request) error {
		invoked = append(invoked, r.URL)
		if "/b" == r.URL {
			return fault.ErrNoConnection
		}
		return nil
	})

	// losing connectivity mid-drain retains the failed entry and
	// everything after it
	assert.Equal(t, []string{"/a", "/b"}, invoked, "drain must stop at the connection error")
	assert.Equal(t, 1, replayed, "replayed count mismatch")
	assert.Equal(t, 0, dropped, "nothing may be dropped on connection loss")
	assert.Equal(t, 2, q.Depth(), "failed entry and successors must be retained")

	pending := q.Pending()
	assert.Equal(t, "/b", pending[0].URL, "retained entry mismatch")
}

func TestDrainPersistsStatistics(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	q.Add("POST", "http://api/a", nil, nil)
	q.Add("POST", "http://api/b", nil, nil)

	replayed, dropped := q.Drain(func(request queue.Request) error {
		if "http://api/b" == request.URL {
			return errors.New("rejected by backend")
		}
		return nil
	})
	assert.Equal(t, 1, replayed, "replay count mismatch")
	assert.Equal(t, 1, dropped, "drop count mismatch")

	statistics := queue.ReadStatistics()
	assert.Equal(t, uint64(1), statistics.Replayed, "persisted replay total mismatch")
	assert.Equal(t, uint64(1), statistics.Dropped, "persisted drop total mismatch")
}

func TestQueueSurvivesReopen(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	first := q.Add("POST", "/transactions", nil, json.RawMessage(`{"amount":"50"}`))

	// a new handle over the same pool sees the entry and continues
	// the sequence
	q2 := queue.New()
	pending := q2.Pending()
	assert.Equal(t, 1, len(pending), "reopened queue lost the entry")
	assert.Equal(t, first.Sequence, pending[0].Sequence, "sequence mismatch after reopen")

	second := q2.Add("POST", "/later", nil, nil)
	assert.True(t, second.Sequence > first.Sequence, "sequence must resume after recovery")
}

func TestDrainerReplaysOnReconnect(t *testing.T) {
	q := queue.New()
	defer q.Clear()

	conn := connectivity.New()
	conn.Set(connectivity.Offline)

	q.Add("POST", "/transactions", nil, nil)

	replayed := make(chan string, 10)
	d := queue.NewDrainer(q, conn, func(r queue.Request) error {
		replayed <- r.URL
		return nil
	})

	p := background.Start(background.Processes{d}, nil)
	defer p.Stop()

	// still offline: nothing must replay
	select {
	case url := <-replayed:
		t.Fatalf("unexpected replay while offline: %s", url)
	case <-time.After(100 * time.Millisecond):
	}

	conn.Set(connectivity.Online)

	select {
	case url := <-replayed:
		assert.Equal(t, "/transactions", url, "replayed request mismatch")
	case <-time.After(2 * time.Second):
		t.Fatal("reconnect did not trigger a drain")
	}

	deadline := time.Now().Add(2 * time.Second)
	for 0 != q.Depth() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, 0, q.Depth(), "queue must be empty after reconnect drain")
}
