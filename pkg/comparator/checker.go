// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package comparator provides checkmate checkers that report a readable
// diff when column values differ.
package comparator

import (
	"reflect"

	check "github.com/cilium/checkmate"
	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"
)

type diffChecker struct {
	*check.CheckerInfo
}

// DeepEquals is a checkmate checker comparing with reflect.DeepEqual. On a
// mismatch it reports the unified diff of both values pretty-printed.
var DeepEquals check.Checker = &diffChecker{
	&check.CheckerInfo{Name: "DeepEquals", Params: []string{"obtained", "expected"}},
}

func (checker *diffChecker) Check(params []interface{}, names []string) (result bool, error string) {
	if reflect.DeepEqual(params[0], params[1]) {
		return true, ""
	}
	diff, err := Diff(params[1], params[0], names[1], names[0])
	if err != nil {
		return false, err.Error()
	}
	return false, "Unified diff:\n" + diff
}

// Diff returns the unified diff from expected to obtained, both rendered
// with pretty's %# v verb.
func Diff(expected, obtained interface{}, fromName, toName string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(pretty.Sprintf("%# v", expected)),
		B:        difflib.SplitLines(pretty.Sprintf("%# v", obtained)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  32,
	})
}
