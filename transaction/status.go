// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	"github.com/yumvi-pay/remitd/fault"
)

// Status - transaction status enumeration
type Status uint64

// possible status values
//
// transitions are caller-driven: any code path may set any status,
// there is no state machine at this layer
const (
	Nothing      Status = iota // this must be the first value
	Pending      Status = iota
	Processing   Status = iota
	Completed    Status = iota
	Failed       Status = iota
	maximumValue Status = iota // this must be the last value
)

// internal conversion
func toString(s Status) ([]byte, error) {
	switch s {
	case Pending:
		return []byte("pending"), nil
	case Processing:
		return []byte("processing"), nil
	case Completed:
		return []byte("completed"), nil
	case Failed:
		return []byte("failed"), nil
	default:
		return []byte{}, fault.ErrInvalidStatus
	}
}

// convert a string to a status
func fromString(in string) (Status, error) {
	switch in {
	case "pending":
		return Pending, nil
	case "processing":
		return Processing, nil
	case "completed":
		return Completed, nil
	case "failed":
		return Failed, nil
	default:
		return Nothing, fault.ErrInvalidStatus
	}
}

// convert a status to its string form
func (status Status) String() string {
	s, err := toString(status)
	if nil != err {
		return fmt.Sprintf("*Unknown#%d*", uint64(status))
	}
	return string(s)
}

// IsValid - status is one of the four defined values
func (status Status) IsValid() bool {
	return status > Nothing && status < maximumValue
}

// convert a status into JSON
func (status Status) MarshalText() ([]byte, error) {
	return toString(status)
}

// convert status string to a status enumeration value from JSON
func (status *Status) UnmarshalText(s []byte) error {
	parsed, err := fromString(string(s))
	if nil != err {
		return err
	}
	*status = parsed
	return nil
}
