// Package printer turns an emit.Token stream into text (spec.md section
// 4.5). It knows nothing about the AST or dialect configuration that
// produced the stream -- only token kinds and paren/bracket nesting
// depth, which it uses to decide where a multiline break gets indented.
package printer

import (
	"strings"

	"github.com/sqlforge/sqlforge/emit"
)

// Mode selects how CommentNewlineTok breaks render.
type Mode int

const (
	// Multiline honors every commentNewline as a real line break,
	// indented to the current paren/bracket nesting depth.
	Multiline Mode = iota
	// Oneliner collapses every commentNewline to a single space,
	// producing a single line of output.
	Oneliner
)

// IndentUnit is the number of spaces per nesting level in Multiline mode.
const IndentUnit = 2

// Print renders tokens as text under mode.
func Print(tokens []emit.Token, mode Mode) string {
	p := &printer{mode: mode}
	p.run(tokens)
	return p.buf.String()
}

type printer struct {
	buf        strings.Builder
	mode       Mode
	depth      int
	lastIsWS   bool // last emitted rune was a space or newline
	pendingWS  bool // a SpaceTok was seen but not yet flushed
}

func (p *printer) run(tokens []emit.Token) {
	for i, t := range tokens {
		switch t.Kind {
		case emit.SpaceTok:
			p.pendingWS = true
		case emit.CommentNewlineTok:
			p.pendingWS = false
			if p.mode == Multiline {
				p.writeBreak()
			} else {
				p.writeRaw(" ")
			}
		case emit.ContainerTok:
			// containers carry no text of their own; they only group
			// tokens for the emitter's comment rules.
		case emit.ParenTok:
			p.flushPending()
			p.writeRaw(t.Text)
			switch t.Text {
			case "(", "[":
				p.depth++
			case ")", "]":
				if p.depth > 0 {
					p.depth--
				}
			}
		case emit.CommaTok, emit.ArgSplitterTok:
			p.pendingWS = false
			p.writeRaw(t.Text)
			if i+1 < len(tokens) && tokens[i+1].Kind != emit.CommentNewlineTok {
				p.writeRaw(" ")
			}
		case emit.DotTok:
			p.pendingWS = false
			p.writeRaw(t.Text)
		default:
			p.flushPending()
			p.writeRaw(t.Text)
		}
	}
}

func (p *printer) flushPending() {
	if p.pendingWS && !p.lastIsWS {
		p.writeRaw(" ")
	}
	p.pendingWS = false
}

func (p *printer) writeBreak() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat(" ", p.depth*IndentUnit))
	p.lastIsWS = true
}

func (p *printer) writeRaw(s string) {
	if s == "" {
		return
	}
	p.buf.WriteString(s)
	p.lastIsWS = strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n")
}
