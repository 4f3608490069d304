// Package convert implements the annotation relocation engine: a single
// forward pass over a file's lines that removes comment-style doxygen
// annotation blocks and re-emits their content as docstring literals inside
// the definition they document.
package convert

import (
	"fmt"

	"github.com/t-bowcock/doxygen-converter/internal/scan"
)

const (
	// defOpen marks docstrings under def/class headers. The bang keeps the
	// docstring visible to doxygen.
	defOpen = `"""!`
	// moduleOpen marks module-level docstrings.
	moduleOpen = `"""`
	closeMark  = `"""`
)

// Options control docstring emission.
type Options struct {
	// Indent is one indent unit, appended to a header's own leading
	// whitespace when emitting its docstring. Defaults to four spaces.
	Indent string
}

// Result is the outcome of relocating one file.
type Result struct {
	Lines   []string // converted file
	Blocks  int      // annotation blocks relocated
	Dropped int      // content lines discarded from an unterminated trailing block
}

// MismatchError reports a line inside an annotation block that is neither a
// header, decorator, blank line, nor a strippable continuation comment.
type MismatchError struct {
	LineNo int // 1-based
	Line   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("line %d: %q is inside an annotation block but is not a continuation comment, definition header, decorator or blank line", e.LineNo, e.Line)
}

// Relocate converts every annotation block in lines into a docstring
// literal placed directly after the definition header that terminates it.
// A blank line terminates a block at module scope: the docstring is emitted
// unindented where the annotation stood, and the blank is reproduced after
// it. Non-annotation lines keep their content and relative order exactly.
//
// Relocate never mutates lines; it builds a fresh output sequence. A block
// still open at end of file is discarded and reported via Result.Dropped.
func Relocate(lines []string, opts Options) (Result, error) {
	indent := opts.Indent
	if indent == "" {
		indent = "    "
	}

	// A trailing empty element marks a file that ends in a newline. It is a
	// byte-accounting artifact, not a blank line, so it must not terminate
	// an open block.
	finalNewline := false
	if n := len(lines); n > 0 && lines[n-1] == "" {
		finalNewline = true
		lines = lines[:n-1]
	}

	var res Result
	out := make([]string, 0, len(lines))
	var buf []string
	inBlock := false

	for i, line := range lines {
		ln, ok := scan.Classify(line, inBlock)
		if !ok {
			return Result{}, &MismatchError{LineNo: i + 1, Line: line}
		}
		switch ln.Kind {
		case scan.AnnotationStart:
			inBlock = true
			buf = append(buf, ln.Text)
		case scan.FunctionDef, scan.ClassDef:
			out = append(out, line)
			out = appendLiteral(out, ln.Indent+indent, defOpen, buf)
			res.Blocks++
			buf, inBlock = nil, false
		case scan.Blank:
			out = appendLiteral(out, "", moduleOpen, buf)
			out = append(out, line)
			res.Blocks++
			buf, inBlock = nil, false
		case scan.Decorator:
			out = append(out, line)
		case scan.Continuation:
			buf = append(buf, ln.Text)
		default:
			out = append(out, line)
		}
	}

	if inBlock {
		res.Dropped = len(buf)
	}
	if finalNewline {
		out = append(out, "")
	}
	res.Lines = out
	return res, nil
}

// appendLiteral emits an opening marker, the buffered content and a closing
// marker, all at the given indentation.
func appendLiteral(dst []string, indent, open string, content []string) []string {
	dst = append(dst, indent+open)
	for _, c := range content {
		dst = append(dst, indent+c)
	}
	return append(dst, indent+closeMark)
}
