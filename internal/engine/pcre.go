package engine

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.elara.ws/pcre"

	"github.com/bethropolis/regextester/internal/pattern"
)

// maxRepeat is the largest count pcre accepts in a bounded repeat.
const maxRepeat = 65535

// pcreRegexp runs patterns on the pcre port. The port drops empty matches
// and always searches from the start of the subject, so every match is found
// with a step pattern: skip at least k code points from the start, capture
// the real pattern as group 1, then take one more character or the end. The
// step match is never empty and the real pattern sees the whole subject.
type pcreRegexp struct {
	src   string
	flags Flags
	names []string
}

func compilePCRE(src string, flags Flags) (indexRegexp, error) {
	if flags.Has(Literal) {
		src = quoteLiteral(src)
	}
	r := &pcreRegexp{src: src, flags: flags}
	prefix := r.prefix()
	plain, err := r.compile(prefix + r.body())
	if err != nil {
		return nil, pcreSyntaxError(src, len(prefix), err)
	}
	defer closePCRE(plain)
	r.names, err = pcreGroupNames(src, plain)
	if err != nil {
		return nil, &SyntaxError{Pattern: src, Index: -1, Message: err.Error(), Err: err}
	}
	return r, nil
}

func (r *pcreRegexp) prefix() string {
	return (r.flags &^ CaseInsensitive).inlinePrefix(true)
}

// body is the pattern with a trailing # comment closed off.
func (r *pcreRegexp) body() string {
	if r.flags.Has(Comments) {
		return r.src + "\n"
	}
	return r.src
}

func (r *pcreRegexp) compile(expr string) (*pcre.Regexp, error) {
	opts := pcre.UTF
	if r.flags.Has(CaseInsensitive) {
		opts |= pcre.Caseless
	}
	return pcre.CompileOpts(expr, opts)
}

// step compiles the pattern that finds the first match starting at or after
// code point k.
func (r *pcreRegexp) step(k int) (*pcre.Regexp, error) {
	var b strings.Builder
	b.WriteString(r.prefix())
	b.WriteString(`\A(?s:`)
	for ; k > maxRepeat; k -= maxRepeat {
		b.WriteString(".{" + strconv.Itoa(maxRepeat) + "}")
	}
	b.WriteString(".{" + strconv.Itoa(k) + ",}?)((?:")
	b.WriteString(r.body())
	b.WriteString(`))(?s:.|\z)`)
	return r.compile(b.String())
}

func (r *pcreRegexp) groupNames() []string { return r.names }
func (r *pcreRegexp) close()               {}

// findAll walks the matches like a Java matcher: after an empty match the
// next one may not start before the following code point. An empty text
// never matches because the port refuses empty subjects.
func (r *pcreRegexp) findAll(text string, n int) (out [][]int, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, fmt.Errorf("pcre: %v", v)
		}
	}()

	subject := []byte(text)
	from, fromRunes := 0, 0
	for n < 0 || len(out) < n {
		re, err := r.step(fromRunes)
		if err != nil {
			return nil, err
		}
		loc := re.FindSubmatchIndex(subject)
		closePCRE(re)
		if len(loc) < 4 || loc[2] < from {
			break
		}

		m := make([]int, len(loc)-2)
		for i, v := range loc[2:] {
			if v < 0 || v > len(subject) {
				v = -1
			}
			m[i] = v
		}
		out = append(out, m)

		next := m[1]
		if m[0] == m[1] {
			if next >= len(subject) {
				break
			}
			_, size := utf8.DecodeRune(subject[next:])
			next += size
		}
		fromRunes += utf8.RuneCount(subject[from:next])
		from = next
	}
	return out, nil
}

// closePCRE frees re once; the port's finalizer would free it again.
func closePCRE(re *pcre.Regexp) {
	runtime.SetFinalizer(re, nil)
	re.Close()
}

// pcreGroupNames names groups from the structural scan of src, keeping a
// name only where pcre agrees on its number.
func pcreGroupNames(src string, re *pcre.Regexp) (names []string, err error) {
	defer func() {
		if v := recover(); v != nil {
			names, err = nil, fmt.Errorf("pcre: %v", v)
		}
	}()
	names = make([]string, re.NumSubexp()+1)
	groups, gerr := pattern.Groups(src)
	if gerr != nil || len(groups) != len(names)-1 {
		return names, nil
	}
	for i, g := range groups {
		if g.Name != "" && re.SubexpIndex(g.Name) == i+1 {
			names[i+1] = g.Name
		}
	}
	return names, nil
}

// pcreSyntaxError converts the "offset N: message" form of the port's
// compile errors. N counts bytes of the compiled text, which starts with
// prefixLen bytes of inline flags.
func pcreSyntaxError(src string, prefixLen int, err error) *SyntaxError {
	se := &SyntaxError{Pattern: src, Index: -1, Message: err.Error(), Err: err}
	var perr *pcre.PcreError
	if !errors.As(err, &perr) {
		return se
	}
	head, msg, ok := strings.Cut(err.Error(), ": ")
	if !ok || !strings.HasPrefix(head, "offset ") {
		return se
	}
	at, convErr := strconv.Atoi(strings.TrimPrefix(head, "offset "))
	if convErr != nil {
		return se
	}
	se.Message = msg
	at -= prefixLen
	switch {
	case at < 0:
		at = 0
	case at > len(src):
		at = len(src)
	}
	se.Index = utf8.RuneCountInString(src[:at])
	return se
}
