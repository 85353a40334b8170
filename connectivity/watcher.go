// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connectivity

import (
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/yumvi-pay/remitd/util"
)

// Watcher - background process that mirrors the presence of the
// offline-mode marker file into the connectivity state
//
// marker present means ForcedOffline, marker absent means Online
// a detected Offline mode is never overridden by marker removal
type Watcher struct {
	log        *logger.L
	state      *State
	markerFile string
	directory  string
}

// NewWatcher - create a watcher for the offline-mode marker file
//
// the containing directory is watched so create/remove of the marker
// itself is seen
func NewWatcher(state *State, markerFile string) (*Watcher, error) {
	markerFile, err := filepath.Abs(filepath.Clean(markerFile))
	if nil != err {
		return nil, err
	}

	w := &Watcher{
		log:        logger.New("offline-watch"),
		state:      state,
		markerFile: markerFile,
		directory:  filepath.Dir(markerFile),
	}

	// pick up a marker left behind by a previous run
	if util.EnsureFileExists(markerFile) {
		state.Set(ForcedOffline)
	}

	return w, nil
}

// Run - background process loop
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		w.log.Errorf("new watcher error: %s", err)
		return
	}
	defer watcher.Close()

	err = watcher.Add(w.directory)
	if nil != err {
		w.log.Errorf("watcher add: %q error: %s", w.directory, err)
		return
	}

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-watcher.Events:
			if path.Base(event.Name) != path.Base(w.markerFile) {
				continue loop
			}
			w.log.Debugf("marker event: %v", event)

			if 0 != event.Op&(fsnotify.Create|fsnotify.Write) {
				w.state.Set(ForcedOffline)
			} else if 0 != event.Op&(fsnotify.Remove|fsnotify.Rename) {
				// only release a forced offline; a detected
				// offline state stays until connectivity returns
				if w.state.Is(ForcedOffline) {
					w.state.Set(Online)
				}
			}

		case err := <-watcher.Errors:
			w.log.Errorf("watcher error: %s", err)
		}
	}
}
