package emit

import "strings"

// sanitizeComment defangs any sequence that could prematurely close or
// reopen a block comment, and collapses internal newlines for line
// comments (spec.md section 4.4, "Comment sanitization").
func sanitizeComment(text string, block bool) string {
	s := strings.ReplaceAll(text, "*/", "* /")
	s = strings.ReplaceAll(s, "/*", "/ *")
	if !block {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	return s
}

// emitBlockComment renders one sanitized comment as a block comment:
// single line -> `/* text */`; multiple lines -> a two-space-indented
// body between `/*` and `*/` on their own lines.
func (e *Emitter) emitBlockComment(text string) {
	clean := sanitizeComment(text, true)
	lines := strings.Split(clean, "\n")
	if len(lines) == 1 {
		e.emit(Token{Kind: CommentTok, Text: "/* " + strings.TrimSpace(lines[0]) + " */"})
		return
	}
	e.emit(Token{Kind: CommentTok, Text: "/*"})
	e.emit(commentNewline())
	for _, l := range lines {
		e.emit(Token{Kind: CommentTok, Text: "  " + strings.TrimSpace(l)})
		e.emit(commentNewline())
	}
	e.emit(Token{Kind: CommentTok, Text: "*/"})
}

// emitComments renders a []string comment list, one block comment per
// entry. With before=true each comment is followed by a single space;
// with before=false each is preceded by one.
func (e *Emitter) emitComments(list []string, before bool) {
	for _, c := range list {
		if before {
			e.emitBlockComment(c)
			e.emit(space())
		} else {
			e.emit(space())
			e.emitBlockComment(c)
		}
	}
}

// emitBeforeAfter renders a node's Before comments, calls body to
// render the node's own tokens, then renders After comments.
func (e *Emitter) emitBeforeAfter(before, after []string, body func()) {
	e.emitComments(before, true)
	body()
	e.emitComments(after, false)
}

// headerComments renders the `HeaderComments` slot of a top-level
// SimpleSelect: when the list mixes separator lines (composed solely of
// one repeated punctuation rune) with text lines, every line merges into
// a single block comment, one item per line; otherwise each line becomes
// its own block comment (spec.md section 4.4 rule 8).
func (e *Emitter) headerComments(lines []string) {
	if len(lines) == 0 {
		return
	}
	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		e.emitBlockComment(strings.Join(block, "\n"))
		e.emit(commentNewline())
		block = nil
	}
	mixed := false
	for _, l := range lines {
		if isSeparatorLine(l) != isSeparatorLine(lines[0]) {
			mixed = true
		}
	}
	for _, l := range lines {
		if mixed {
			block = append(block, l)
			continue
		}
		e.emitBlockComment(l)
		e.emit(commentNewline())
	}
	flush()
}

func isSeparatorLine(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}
	r := rune(s[0])
	for _, c := range s {
		if c != r {
			return false
		}
	}
	return strings.ContainsAny(string(r), "-=*#~")
}
