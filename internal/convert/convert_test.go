package convert

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func relocate(t *testing.T, lines []string) Result {
	t.Helper()
	res, err := Relocate(lines, Options{})
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	return res
}

func TestRelocateIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{"empty file", []string{""}},
		{"no lines", nil},
		{"no trailing newline", []string{"x = 1"}},
		{"plain code", []string{"import os", "", "x = 1", ""}},
		{"definitions without annotations", []string{
			"class C:",
			"    def m(self):",
			"        pass",
			"",
		}},
		{"ordinary comments", []string{"# a note", "#!shebang", "# another", ""}},
		{"decorated function", []string{"@cached", "def f():", "    pass", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := relocate(t, tt.lines)
			if diff := cmp.Diff(tt.lines, res.Lines); diff != "" {
				t.Errorf("output differs from input (-want +got):\n%s", diff)
			}
			if res.Blocks != 0 {
				t.Errorf("Blocks = %d, want 0", res.Blocks)
			}
		})
	}
}

func TestRelocateFunctionBlock(t *testing.T) {
	t.Parallel()

	in := []string{
		"## @brief Do the thing",
		"#  @param x",
		"def thing(x):",
		"    return x",
		"",
	}
	want := []string{
		"def thing(x):",
		`    """!`,
		"    Do the thing",
		"    @param x",
		`    """`,
		"    return x",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if res.Blocks != 1 {
		t.Errorf("Blocks = %d, want 1", res.Blocks)
	}
}

func TestRelocateNestedMethod(t *testing.T) {
	t.Parallel()

	in := []string{
		"class C:",
		"    ## @brief Runs it",
		"    def run(self):",
		"        pass",
		"",
	}
	want := []string{
		"class C:",
		"    def run(self):",
		`        """!`,
		"        Runs it",
		`        """`,
		"        pass",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRelocateDecoratorStaysAboveHeader(t *testing.T) {
	t.Parallel()

	in := []string{
		"## @brief Static helper",
		"#  @return",
		"@staticmethod",
		"def helper():",
		"    pass",
		"",
	}
	want := []string{
		"@staticmethod",
		"def helper():",
		`    """!`,
		"    Static helper",
		"    @return",
		`    """`,
		"    pass",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRelocateModuleBlockAfterShebang(t *testing.T) {
	t.Parallel()

	in := []string{
		"#!/usr/bin/env python3",
		"## @package mymodule",
		"#  Module header text",
		"",
		"x = 1",
		"",
	}
	want := []string{
		"#!/usr/bin/env python3",
		`"""`,
		"mymodule",
		"Module header text",
		`"""`,
		"",
		"x = 1",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRelocateExampleFile(t *testing.T) {
	t.Parallel()

	in := []string{
		"#!/usr/bin/env python3",
		"",
		"## @package doxygen_test",
		"#  Some file header",
		"",
		"## @brief A test Class",
		"class TestClass:",
		"",
		"    ## @brief Some test function",
		"    #  @param param1",
		"    #  @param param2",
		"    #  @return",
		"    @staticmethod",
		"    def test_function(param1: str, param2: int) -> str:",
		"        return param1 * param2",
		"",
	}
	want := []string{
		"#!/usr/bin/env python3",
		"",
		`"""`,
		"doxygen_test",
		"Some file header",
		`"""`,
		"",
		"class TestClass:",
		`    """!`,
		"    A test Class",
		`    """`,
		"",
		"    @staticmethod",
		"    def test_function(param1: str, param2: int) -> str:",
		`        """!`,
		"        Some test function",
		"        @param param1",
		"        @param param2",
		"        @return",
		`        """`,
		"        return param1 * param2",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if res.Blocks != 3 {
		t.Errorf("Blocks = %d, want 3", res.Blocks)
	}

	// Converted output must survive a second run untouched.
	again := relocate(t, res.Lines)
	if diff := cmp.Diff(res.Lines, again.Lines); diff != "" {
		t.Errorf("second run mutated output (-want +got):\n%s", diff)
	}
	if again.Blocks != 0 {
		t.Errorf("second run relocated %d blocks, want 0", again.Blocks)
	}
}

// All four start tags open a block, each contributing its trailing text as
// the first content line.
func TestRelocateStartTags(t *testing.T) {
	t.Parallel()

	in := []string{
		"## @file widgets.py",
		"#  Widget helpers",
		"",
		"## @class Widget",
		"#  @see Gadget",
		"class Widget:",
		"    pass",
		"",
	}
	want := []string{
		`"""`,
		"widgets.py",
		"Widget helpers",
		`"""`,
		"",
		"class Widget:",
		`    """!`,
		"    Widget",
		"    @see Gadget",
		`    """`,
		"    pass",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if res.Blocks != 2 {
		t.Errorf("Blocks = %d, want 2", res.Blocks)
	}
}

// Each definition keeps its own documentation even when two classes define
// a method with the same name.
func TestRelocateSameNamedMethods(t *testing.T) {
	t.Parallel()

	in := []string{
		"class A:",
		"    ## @brief First run",
		"    def run(self):",
		"        pass",
		"",
		"class B:",
		"    ## @brief Second run",
		"    def run(self):",
		"        pass",
		"",
	}
	want := []string{
		"class A:",
		"    def run(self):",
		`        """!`,
		"        First run",
		`        """`,
		"        pass",
		"",
		"class B:",
		"    def run(self):",
		`        """!`,
		"        Second run",
		`        """`,
		"        pass",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// A blank line always terminates the open block at module scope, even when
// the annotation sits mid-file.
func TestRelocateBlankTerminatedBlock(t *testing.T) {
	t.Parallel()

	in := []string{
		"x = 1",
		"## @brief Orphaned",
		"",
		"y = 2",
		"",
	}
	want := []string{
		"x = 1",
		`"""`,
		"Orphaned",
		`"""`,
		"",
		"y = 2",
		"",
	}

	res := relocate(t, in)
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// A block still open at end of file is discarded, not emitted; the dropped
// content is reported so callers can warn.
func TestRelocateDropsTrailingBlock(t *testing.T) {
	t.Parallel()

	in := []string{
		"x = 1",
		"## @brief Never attached",
		"#  extra detail",
		"",
	}

	// The trailing empty element marks the file's final newline; it must
	// not act as a terminating blank line.
	res := relocate(t, in)
	want := []string{"x = 1", ""}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if res.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", res.Dropped)
	}
	if res.Blocks != 0 {
		t.Errorf("Blocks = %d, want 0", res.Blocks)
	}
}

func TestRelocateMismatch(t *testing.T) {
	t.Parallel()

	in := []string{
		"## @brief x",
		"y = 1",
		"",
	}

	_, err := Relocate(in, Options{})
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Relocate error = %v, want MismatchError", err)
	}
	if mismatch.LineNo != 2 {
		t.Errorf("LineNo = %d, want 2", mismatch.LineNo)
	}
}

func TestRelocateCustomIndent(t *testing.T) {
	t.Parallel()

	in := []string{
		"## @brief Narrow",
		"def f():",
		"    pass",
		"",
	}
	want := []string{
		"def f():",
		`  """!`,
		"  Narrow",
		`  """`,
		"    pass",
		"",
	}

	res, err := Relocate(in, Options{Indent: "  "})
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
