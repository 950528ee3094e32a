package engine

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/coregx/coregex"
)

func compileRE2(src string, flags Flags) (indexRegexp, error) {
	if flags.Has(Comments) {
		return nil, &SyntaxError{Pattern: src, Index: -1, Message: "comments flag is not supported by the re2 engine"}
	}
	if flags.Has(Literal) {
		src = quoteLiteral(src)
	}
	re, err := coregex.Compile(flags.inlinePrefix(false) + src)
	if err != nil {
		return nil, re2SyntaxError(src, err)
	}
	return coregexRegexp{re}, nil
}

type coregexRegexp struct {
	re *coregex.Regexp
}

func (r coregexRegexp) findAll(text string, n int) ([][]int, error) {
	return r.re.FindAllStringSubmatchIndex(text, n), nil
}

// groupNames sizes the groups from SubexpNames: coregex counts group 0 in
// NumSubexp.
func (r coregexRegexp) groupNames() []string {
	names := r.re.SubexpNames()
	if len(names) == 0 {
		return []string{""}
	}
	return append([]string(nil), names...)
}

func (r coregexRegexp) close() {}

func quoteLiteral(s string) string {
	return coregex.QuoteMeta(s)
}

// re2SyntaxError locates the offending fragment. RE2 parse errors carry the
// fragment rather than a position, so the first occurrence is reported.
func re2SyntaxError(src string, err error) *SyntaxError {
	se := &SyntaxError{Pattern: src, Index: -1, Message: err.Error(), Err: err}
	var perr *syntax.Error
	if !errors.As(err, &perr) {
		if _, perr2 := syntax.Parse(src, syntax.Perl); perr2 != nil {
			errors.As(perr2, &perr)
		}
	}
	if perr != nil {
		se.Message = fmt.Sprintf("%s: %s", perr.Code, perr.Expr)
		if i := strings.Index(src, perr.Expr); i >= 0 && perr.Expr != "" {
			se.Index = i
		}
	}
	return se
}

func asSyntaxError(err error, target **SyntaxError) bool {
	return errors.As(err, target)
}
