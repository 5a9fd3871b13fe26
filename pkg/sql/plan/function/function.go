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

// Package function is the function-execution layer of the expression
// engine. A scalar function is written once against flat columns; this
// package adapts it transparently to constant, nullable and
// dictionary-encoded arguments, and predicts the result type the runtime
// path will produce.
package function

import (
	"context"

	"github.com/helicondb/helicon/pkg/common/moerr"
	"github.com/helicondb/helicon/pkg/container/types"
	"github.com/helicondb/helicon/pkg/container/vector"
	"github.com/helicondb/helicon/pkg/vm/process"
)

// ScalarNull can meet each required type during overload matching.
// e.g. for `select length(NULL)`, the argument is typed [ScalarNull] when
// the query plan is built.
const ScalarNull = types.T_any

// Overload is one overload of a built-in function or an operator.
type Overload struct {
	// Index is the overload's location number among all overloads with
	// the same function name.
	Index int32

	// Volatile overloads cannot be folded.
	Volatile bool

	Args     []types.T
	Variadic bool

	// RetFn computes the intrinsic return type of the overload, before
	// nullable or dictionary decorations are re-applied by the framework.
	RetFn func(parameters []types.Type) types.Type

	// Fn is the raw function body. It receives argument vectors that may
	// be flat or constant and returns the result vector for length rows.
	Fn func(vs []*vector.Vector, proc *process.Process, length int) (*vector.Vector, error)

	// UseNullDefault asks the framework to handle NULL propagation: the
	// body never sees a nullable argument and the result is NULL wherever
	// any argument is NULL.
	UseNullDefault bool

	// UseConstFold asks the framework to evaluate the body once on a
	// single row when every argument is constant, re-wrapping the result
	// as a constant of the original row count.
	UseConstFold bool

	// UseDictDefault asks the framework to evaluate the body over the
	// unique values of a dictionary-encoded argument instead of the
	// expanded column.
	UseDictDefault bool

	// ParameterMustConst marks argument positions that must stay constant
	// at call time; constant folding copies them through unconverted.
	ParameterMustConst []bool

	// CompileFn, when set, is the generated-code form of the body; see
	// compile.go.
	CompileFn  func(values []RowFn) RowFn
	CanCompile func(parameters []types.Type) bool

	name string
}

func (ov *Overload) Name() string {
	return ov.name
}

func (ov *Overload) CannotFold() bool {
	return ov.Volatile
}

func (ov *Overload) mustConstAt(i int) bool {
	return i < len(ov.ParameterMustConst) && ov.ParameterMustConst[i]
}

func (ov *Overload) checkNumberOfArguments(ctx context.Context, n int) error {
	if ov.Variadic {
		return nil
	}
	if n != len(ov.Args) {
		return moerr.NewArgumentCountMismatch(ctx, ov.name, n, len(ov.Args))
	}
	return nil
}

// Functions records all overloads of the same function name.
type Functions struct {
	Id        int32
	Name      string
	Overloads []Overload
}

// function ids
const (
	PLUS = iota
	MINUS
	LENGTH
	UPPER
	ISNULL

	FUNCTION_END_NUMBER
)

// functionIdRegister maps a function name to its id.
var functionIdRegister = map[string]int32{
	"+":      PLUS,
	"-":      MINUS,
	"length": LENGTH,
	"upper":  UPPER,
	"isnull": ISNULL,
}

var functionRegister [FUNCTION_END_NUMBER]Functions

func init() {
	for _, fn := range supportedOperators {
		registerFunction(fn)
	}
	for _, fn := range supportedBuiltins {
		registerFunction(fn)
	}
}

func registerFunction(fn Functions) {
	for i := range fn.Overloads {
		fn.Overloads[i].Index = int32(i)
		fn.Overloads[i].name = fn.Name
	}
	functionRegister[fn.Id] = fn
}

// EncodeOverloadID converts function-id and overload-index to an
// overloadID: the high 32 bits are the function id, the low 32 bits the
// overload index.
func EncodeOverloadID(fid, index int32) (overloadID int64) {
	overloadID = int64(fid)
	overloadID = overloadID << 32
	overloadID |= int64(index)
	return
}

func DecodeOverloadID(overloadID int64) (fid int32, index int32) {
	index = int32(overloadID)
	fid = int32(overloadID >> 32)
	return
}

// GetFunctionByID gets an overload by its encoded id.
func GetFunctionByID(ctx context.Context, overloadID int64) (*Overload, error) {
	fid, index := DecodeOverloadID(overloadID)
	if fid < 0 || fid >= FUNCTION_END_NUMBER {
		return nil, moerr.NewInvalidInput(ctx, "function overload id not found")
	}
	fs := &functionRegister[fid]
	if int(index) >= len(fs.Overloads) {
		return nil, moerr.NewInvalidInput(ctx, "function overload id not found")
	}
	return &fs.Overloads[index], nil
}

// GetFunctionByName matches an overload against the declared argument
// types and resolves the return type the execution path will produce.
func GetFunctionByName(ctx context.Context, name string, argTypes []types.Type) (*Overload, types.Type, error) {
	fid, ok := functionIdRegister[name]
	if !ok {
		return nil, types.Type{}, moerr.NewNotSupported(ctx, "function or operator '%s'", name)
	}
	fs := &functionRegister[fid]
	for i := range fs.Overloads {
		ov := &fs.Overloads[i]
		if !typesMatch(ov, argTypes) {
			continue
		}
		retTyp, err := ov.ResolveReturnType(ctx, argTypes)
		if err != nil {
			return nil, types.Type{}, err
		}
		return ov, retTyp, nil
	}
	return nil, types.Type{}, moerr.NewInvalidArg(ctx, "function "+name, argTypes)
}

// typesMatch checks one overload against declared argument types.
// Decorations are stripped first; the null-only type matches anything.
func typesMatch(ov *Overload, argTypes []types.Type) bool {
	if ov.Variadic {
		return true
	}
	if len(argTypes) != len(ov.Args) {
		return false
	}
	for i, t := range argTypes {
		if ov.Args[i] == ScalarNull {
			// the overload accepts any argument type at this position
			continue
		}
		oid := t.StripDict().StripNullable().Oid
		if oid == ScalarNull {
			continue
		}
		if oid != ov.Args[i] {
			return false
		}
	}
	return true
}
