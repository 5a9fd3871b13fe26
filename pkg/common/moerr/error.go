// Copyright 2021 - 2022 Helicon DB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package moerr is the error package of the engine. Every error carries a
// numeric code; code groups separate user-facing, query-rejecting errors
// from internal errors that indicate an engine defect.
package moerr

import (
	"context"
	"fmt"
	"io"
)

const MySQLDefaultSqlState = "HY000"

const (
	ER_UNKNOWN_ERROR               uint16 = 1105
	ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT uint16 = 1582
	ER_WRONG_ARGUMENTS             uint16 = 1210
)

const (
	// 0 - 99 is OK. They do not contain info, and are special handled
	// using a static instance, no alloc.
	Ok    uint16 = 0
	OkMax uint16 = 99

	// 100 - 200 is Info.
	ErrInfo uint16 = 100

	// Group 1: Internal errors. These indicate an engine defect, never
	// bad user input.
	ErrStart        uint16 = 20100
	ErrInternal     uint16 = 20101
	ErrNYI          uint16 = 20102
	ErrNotSupported uint16 = 20103

	// Group 2: numeric and functions.
	ErrInvalidArg            uint16 = 20200
	ErrArgumentCountMismatch uint16 = 20201
	ErrOutOfRange            uint16 = 20202

	// Group 3: invalid input.
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state and io errors.
	ErrInvalidState uint16 = 20400
	ErrEmptyVector  uint16 = 20401
	ErrUnexpectedEOF uint16 = 20402

	// Group End: max value of error code.
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	mysqlCode        uint16
	sqlStates        []string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	ErrInfo: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "info: %s"},

	ErrInternal:     {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: %s"},
	ErrNYI:          {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "%s is not yet implemented"},
	ErrNotSupported: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "%s is not supported"},

	ErrInvalidArg:            {ER_WRONG_ARGUMENTS, []string{MySQLDefaultSqlState}, "invalid argument %s, bad value %s"},
	ErrArgumentCountMismatch: {ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT, []string{MySQLDefaultSqlState}, "number of arguments for function %s doesn't match: passed %d, should be %d"},
	ErrOutOfRange:            {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "data out of range: data type %s, %s"},

	ErrBadConfig:    {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid configuration: %s"},
	ErrInvalidInput: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid input: %s"},

	ErrInvalidState:  {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid state %s"},
	ErrEmptyVector:   {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "vector is empty"},
	ErrUnexpectedEOF: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "unexpected end of file %s"},

	ErrEnd: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: end of errcode code"},
}

func newError(_ context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(fmt.Sprintf("not exist error code: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   item.errorMsgOrFormat,
			sqlState:  item.sqlStates[0],
		}
	} else {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   fmt.Sprintf(item.errorMsgOrFormat, args...),
			sqlState:  item.sqlStates[0],
		}
	}
	return err
}

type Error struct {
	code      uint16
	mysqlCode uint16
	message   string
	sqlState  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) MySQLCode() uint16 {
	return e.mysqlCode
}

func (e *Error) SqlState() string {
	return e.sqlState
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

// IsInternal reports whether e indicates an engine defect rather than bad
// user input.
func (e *Error) IsInternal() bool {
	return e.code >= ErrStart && e.code < ErrInvalidArg
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}
	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// ConvertGoError converts a go error into a moerr. Note here we must
// return error, because nil error is the same as nil *Error -- Go
// strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}
	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// if io.EOF reaches here, we believe it is not expected.
		return NewUnexpectedEOF(ctx, err.Error())
	}
	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

func NewInfo(ctx context.Context, msg string) *Error {
	return newError(ctx, ErrInfo, msg)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNotSupported, xmsg)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewArgumentCountMismatch(ctx context.Context, fn string, passed, expected int) *Error {
	return newError(ctx, ErrArgumentCountMismatch, fn, passed, expected)
}

func NewOutOfRange(ctx context.Context, typ string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrOutOfRange, typ, xmsg)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidState, xmsg)
}

func NewEmptyVector(ctx context.Context) *Error {
	return newError(ctx, ErrEmptyVector)
}

func NewUnexpectedEOF(ctx context.Context, msg string) *Error {
	return newError(ctx, ErrUnexpectedEOF, msg)
}
