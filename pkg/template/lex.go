package template

import (
	"fmt"
	"strings"

	"github.com/aretw0/enumtext/pkg/core"
)

type lexer struct {
	src    string
	pos    int
	lit    strings.Builder
	litPos int
	segs   []core.Segment
	err    error
}

type stateFn func(*lexer) stateFn

func (l *lexer) run() {
	for state := lexText; state != nil; {
		state = state(l)
	}
}

func (l *lexer) peek(offset int) byte {
	if i := l.pos + offset; i < len(l.src) {
		return l.src[i]
	}
	return 0
}

// literal appends unescaped text to the pending literal segment.
func (l *lexer) literal(at int, text string) {
	if l.lit.Len() == 0 {
		l.litPos = at
	}
	l.lit.WriteString(text)
}

// flush emits the pending literal segment, if any.
func (l *lexer) flush() {
	if l.lit.Len() == 0 {
		return
	}
	seg := core.Literal(l.lit.String())
	seg.Pos = l.litPos
	l.segs = append(l.segs, seg)
	l.lit.Reset()
}

func (l *lexer) errorf(pos int, raw string, format string, args ...any) stateFn {
	l.err = &core.CompileError{
		Placeholder: raw,
		Pos:         pos,
		Kind:        core.ErrSyntax,
		Reason:      fmt.Sprintf(format, args...),
	}
	return nil
}

func lexText(l *lexer) stateFn {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '{':
			if l.peek(1) == '{' {
				l.literal(l.pos, "{")
				l.pos += 2
				continue
			}
			l.flush()
			return lexPlaceholder
		case '}':
			if l.peek(1) == '}' {
				l.literal(l.pos, "}")
				l.pos += 2
				continue
			}
			return l.errorf(l.pos, "", "unmatched '}' (use '}}' for a literal brace)")
		default:
			end := len(l.src)
			if i := strings.IndexAny(l.src[l.pos:], "{}"); i >= 0 {
				end = l.pos + i
			}
			l.literal(l.pos, l.src[l.pos:end])
			l.pos = end
		}
	}
	l.flush()
	return nil
}

func lexPlaceholder(l *lexer) stateFn {
	open := l.pos
	end := strings.IndexByte(l.src[open+1:], '}')
	if end < 0 {
		return l.errorf(open, l.src[open:], "unterminated placeholder")
	}
	closeAt := open + 1 + end
	raw := l.src[open : closeAt+1]

	refText, spec, _ := strings.Cut(l.src[open+1:closeAt], ":")
	ref, reason := parseRef(refText)
	if reason != "" {
		return l.errorf(open, raw, "%s", reason)
	}
	kind, ok := parseSpec(spec)
	if !ok {
		return l.errorf(open, raw, "unknown format spec %q (want '?' or '0x')", spec)
	}

	seg := core.Placeholder(ref, kind)
	seg.Pos = open
	seg.Raw = raw
	l.segs = append(l.segs, seg)
	l.pos = closeAt + 1
	return lexText
}
