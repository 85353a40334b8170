// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Yumvi Pay Ltd.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AuthenticationError GenericError
type ConnectionError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ServerError GenericError
type UnknownError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ProcessError("already initialised")
	ErrAuthenticationRequired = AuthenticationError("authentication required")
	ErrDraftNotFound          = NotFoundError("no pending transaction draft")
	ErrInvalidAmount          = InvalidError("amount is invalid")
	ErrInvalidCurrency        = InvalidError("currency is invalid")
	ErrInvalidPlatform        = InvalidError("platform is invalid")
	ErrInvalidStatus          = InvalidError("transaction status is invalid")
	ErrKeyNotFound            = NotFoundError("key not found")
	ErrNoConnection           = ConnectionError("no internet connection and no cached data available")
	ErrNotInitialised         = ProcessError("not initialised")
	ErrReceiptAddressMissing  = InvalidError("recipient email is required")
	ErrRequestTimeout         = ConnectionError("request timed out")
	ErrRequiredRecipient      = InvalidError("recipient name is required")
	ErrServerFailure          = ServerError("server error, please try again later")
	ErrTransactionNotFound    = NotFoundError("transaction not found")
	ErrUnexpectedResponse     = UnknownError("request failed with an unexpected status")
	ErrUnparseableResponse    = ServerError("response body is not valid JSON")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthenticationError) Error() string { return string(e) }
func (e ConnectionError) Error() string     { return string(e) }
func (e ExistsError) Error() string         { return string(e) }
func (e InvalidError) Error() string        { return string(e) }
func (e NotFoundError) Error() string       { return string(e) }
func (e ProcessError) Error() string        { return string(e) }
func (e ServerError) Error() string         { return string(e) }
func (e UnknownError) Error() string        { return string(e) }

// determine the class of an error
func IsErrAuthentication(e error) bool { _, ok := e.(AuthenticationError); return ok }
func IsErrConnection(e error) bool     { _, ok := e.(ConnectionError); return ok }
func IsErrExists(e error) bool         { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool        { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool       { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool        { _, ok := e.(ProcessError); return ok }
func IsErrServer(e error) bool         { _, ok := e.(ServerError); return ok }
func IsErrUnknown(e error) bool        { _, ok := e.(UnknownError); return ok }
