// Copyright (C) 2021-2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// QuickConfig is testing/quick.Config, so that callers need not import both packages.
type QuickConfig = quick.Config

// QuickCheck checks the property `fn` against each of the `statics` argument lists, and then
// against randomly generated arguments as testing/quick.Check does.  The static cases are
// checked first so that known edge cases fail with a readable input.
func QuickCheck(t *testing.T, fn interface{}, cfg QuickConfig, statics ...[]interface{}) {
	t.Helper()
	fnVal := reflect.ValueOf(fn)
	for i, static := range statics {
		assert.NoError(t, checkStatic(fnVal, i, static))
	}

	err := quick.Check(fn, &cfg)
	var setupErr quick.SetupError
	if errors.As(err, &setupErr) {
		t.Fatalf("quick: %v", err)
	}
	assert.NoError(t, err)
}

func checkStatic(fnVal reflect.Value, i int, static []interface{}) error {
	if fnVal.Kind() != reflect.Func {
		return fmt.Errorf("static#%d: not a function: %v", i, fnVal.Type())
	}
	if n := fnVal.Type().NumIn(); len(static) != n {
		return fmt.Errorf("static#%d has %d args, but the function takes %d args", i, len(static), n)
	}
	args := make([]reflect.Value, len(static))
	for j, arg := range static {
		args[j] = reflect.ValueOf(arg)
	}
	if fnVal.Call(args)[0].Bool() {
		return nil
	}
	return fmt.Errorf("static%w", &quick.CheckError{Count: i + 1, In: static})
}
