// Package scan classifies source lines for the annotation relocator.
//
// Classification is state-dependent: a different rule table applies
// depending on whether the scanner is currently inside an annotation
// block. Within each table the rules are evaluated top to bottom and the
// first match wins; the order is part of the contract, since more than one
// pattern can shape-match the same line.
package scan

import "regexp"

// Kind identifies the classification of a single source line.
type Kind int

const (
	// Plain is any line that matches no rule outside a block. It passes
	// through the relocator untouched.
	Plain Kind = iota
	// AnnotationStart opens an annotation block: a "## @tag ..." comment
	// where the tag is one of @brief, @class, @file or @package. The
	// trailing text becomes the block's first content line regardless of
	// the tag.
	AnnotationStart
	// FunctionDef is a "def name(...):" header terminating an open block.
	FunctionDef
	// ClassDef is a "class name:" header terminating an open block.
	ClassDef
	// Decorator is an "@..." modifier line seen inside a block. It passes
	// through without closing the block or joining its content.
	Decorator
	// Blank is an empty line inside a block; it terminates the block at
	// module scope.
	Blank
	// Continuation is a "#  ..." comment line inside a block; its comment
	// marker is stripped and the remainder captured as content.
	Continuation
	// Shebang is a "#!..." interpreter line.
	Shebang
)

// Line is a classified source line.
type Line struct {
	Kind   Kind
	Indent string // leading whitespace; headers only
	Name   string // definition name; headers only
	Tag    string // annotation tag; starts only
	Text   string // captured annotation content; starts and continuations only
}

var (
	startRe     = regexp.MustCompile(`^\s*##\s(@brief|@class|@file|@package)\s(.*)`)
	functionRe  = regexp.MustCompile(`^(\s*)def\s(.*)\(.*:`)
	classRe     = regexp.MustCompile(`^(\s*)class\s(.*):`)
	decoratorRe = regexp.MustCompile(`^\s*@`)
	contRe      = regexp.MustCompile(`^\s*#\s\s(.*)`)
	shebangRe   = regexp.MustCompile(`^#!`)
)

type rule struct {
	re   *regexp.Regexp
	emit func(m []string) Line
}

// idleRules apply while no block is open. def/class headers, decorators and
// blank lines carry no meaning outside a block and fall through to Plain.
var idleRules = []rule{
	{startRe, func(m []string) Line { return Line{Kind: AnnotationStart, Tag: m[1], Text: m[2]} }},
	{shebangRe, func(m []string) Line { return Line{Kind: Shebang} }},
}

// blockRules apply while a block is open. Headers are checked before the
// decorator and continuation patterns, and the continuation pattern comes
// last because it is the catch-all for comment-shaped lines.
var blockRules = []rule{
	{functionRe, func(m []string) Line { return Line{Kind: FunctionDef, Indent: m[1], Name: m[2]} }},
	{classRe, func(m []string) Line { return Line{Kind: ClassDef, Indent: m[1], Name: m[2]} }},
	{decoratorRe, func(m []string) Line { return Line{Kind: Decorator} }},
	{contRe, func(m []string) Line { return Line{Kind: Continuation, Text: m[1]} }},
}

// Classify applies the rule table for the current scanner state and returns
// the first match. Outside a block every line classifies (unmatched lines
// are Plain). Inside a block, ok is false when the line fits no rule — a
// malformed continuation that the relocator must surface as an error.
func Classify(line string, inBlock bool) (Line, bool) {
	if !inBlock {
		for _, r := range idleRules {
			if m := r.re.FindStringSubmatch(line); m != nil {
				return r.emit(m), true
			}
		}
		return Line{Kind: Plain}, true
	}
	if line == "" {
		return Line{Kind: Blank}, true
	}
	for _, r := range blockRules {
		if m := r.re.FindStringSubmatch(line); m != nil {
			return r.emit(m), true
		}
	}
	return Line{}, false
}
