package grammar

import (
	"golang.org/x/text/cases"
)

// scanner is a byte cursor over the original input. Keywords are compared
// case-insensitively with fold; the source itself is never rewritten so zone
// names keep their case.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.src)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.src[sc.pos]
}

func (sc *scanner) peekAt(offset int) byte {
	if sc.pos+offset >= len(sc.src) {
		return 0
	}
	return sc.src[sc.pos+offset]
}

func (sc *scanner) mark() int {
	return sc.pos
}

func (sc *scanner) reset(pos int) {
	sc.pos = pos
}

func (sc *scanner) rest() string {
	return sc.src[sc.pos:]
}

// skipSpaces consumes blanks and reports how many were consumed.
func (sc *scanner) skipSpaces() int {
	start := sc.pos
	for !sc.eof() && isSpace(sc.src[sc.pos]) {
		sc.pos++
	}
	return sc.pos - start
}

func (sc *scanner) accept(b byte) bool {
	if sc.peek() == b && !sc.eof() {
		sc.pos++
		return true
	}
	return false
}

// acceptFold consumes the next word if it folds to one of words.
func (sc *scanner) acceptFold(words ...string) (string, bool) {
	start := sc.pos
	w := sc.word()
	if w == "" {
		return "", false
	}
	fw := fold(w)
	for _, candidate := range words {
		if fw == candidate {
			return fw, true
		}
	}
	sc.reset(start)
	return "", false
}

func (sc *scanner) sign() byte {
	switch sc.peek() {
	case '+', '-':
		b := sc.src[sc.pos]
		sc.pos++
		return b
	}
	return 0
}

func (sc *scanner) digits() string {
	start := sc.pos
	for !sc.eof() && isDigit(sc.src[sc.pos]) {
		sc.pos++
	}
	return sc.src[start:sc.pos]
}

// fixedDigits consumes exactly n digits or nothing.
func (sc *scanner) fixedDigits(n int) (string, bool) {
	if sc.pos+n > len(sc.src) {
		return "", false
	}
	for i := 0; i < n; i++ {
		if !isDigit(sc.src[sc.pos+i]) {
			return "", false
		}
	}
	s := sc.src[sc.pos : sc.pos+n]
	sc.pos += n
	return s, true
}

// word consumes a run of letters.
func (sc *scanner) word() string {
	start := sc.pos
	for !sc.eof() && isLetter(sc.src[sc.pos]) {
		sc.pos++
	}
	return sc.src[start:sc.pos]
}

// zoneName consumes an IANA style zone name such as America/New_York or
// Etc/GMT+5.
func (sc *scanner) zoneName() string {
	start := sc.pos
	if !isLetter(sc.peek()) {
		return ""
	}
	for !sc.eof() {
		c := sc.src[sc.pos]
		if isLetter(c) || isDigit(c) || c == '/' || c == '_' || (sc.pos > start && (c == '+' || c == '-')) {
			sc.pos++
			continue
		}
		break
	}
	return sc.src[start:sc.pos]
}

// number consumes an unsigned decimal with an optional fraction. At least one
// digit must appear on either side of the point.
func (sc *scanner) number() (Number, bool) {
	start := sc.pos
	n := Number{Int: sc.digits()}
	if sc.peek() == '.' {
		sc.pos++
		n.Point = true
		n.Frac = sc.digits()
	}
	if n.Int == "" && n.Frac == "" {
		sc.reset(start)
		return Number{}, false
	}
	return n, true
}

// signedNumber consumes an optionally signed number.
func (sc *scanner) signedNumber() (Number, bool) {
	start := sc.pos
	s := sc.sign()
	n, ok := sc.number()
	if !ok {
		sc.reset(start)
		return Number{}, false
	}
	n.Sign = s
	return n, true
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
