package dsl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIllegal

	tokIdent
	tokNumber
	tokString
	tokTrue
	tokFalse

	tokAnd // AND, &&
	tokOr  // OR, ||
	tokNot // NOT, !

	tokEq  // ==
	tokNeq // !=
	tokGte // >=
	tokLte // <=
	tokGt  // >
	tokLt  // <

	tokLParen
	tokRParen
	tokComma
	tokDot
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

func (t token) String() string {
	if t.typ == tokEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.text)
}

// lexer produces tokens from an expression source string. It never fails;
// unexpected characters become tokIllegal tokens for the parser to report
// with position information.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() token {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{typ: tokEOF, pos: l.pos}
	}

	start := l.pos
	c := l.src[l.pos]

	// Identifiers may contain non-ASCII letters, so they are scanned by
	// rune rather than by byte.
	if r, size := utf8.DecodeRuneInString(l.src[l.pos:]); isIdentStart(r) {
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		word := l.src[start:l.pos]
		return token{typ: keywordType(word), text: word, pos: start}
	}

	switch {
	case isDigit(c):
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if l.pos < len(l.src) && l.src[l.pos] == '.' &&
			l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			l.pos++
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
		return token{typ: tokNumber, text: l.src[start:l.pos], pos: start}

	case c == '"':
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] != '"' {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{typ: tokIllegal, text: "unterminated string literal", pos: start}
		}
		text := l.src[start+1 : l.pos]
		l.pos++
		return token{typ: tokString, text: text, pos: start}
	}

	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	switch two {
	case "==":
		l.pos += 2
		return token{typ: tokEq, text: two, pos: start}
	case "!=":
		l.pos += 2
		return token{typ: tokNeq, text: two, pos: start}
	case ">=":
		l.pos += 2
		return token{typ: tokGte, text: two, pos: start}
	case "<=":
		l.pos += 2
		return token{typ: tokLte, text: two, pos: start}
	case "&&":
		l.pos += 2
		return token{typ: tokAnd, text: two, pos: start}
	case "||":
		l.pos += 2
		return token{typ: tokOr, text: two, pos: start}
	}

	switch c {
	case '>':
		l.pos++
		return token{typ: tokGt, text: ">", pos: start}
	case '<':
		l.pos++
		return token{typ: tokLt, text: "<", pos: start}
	case '!':
		l.pos++
		return token{typ: tokNot, text: "!", pos: start}
	case '(':
		l.pos++
		return token{typ: tokLParen, text: "(", pos: start}
	case ')':
		l.pos++
		return token{typ: tokRParen, text: ")", pos: start}
	case ',':
		l.pos++
		return token{typ: tokComma, text: ",", pos: start}
	case '.':
		l.pos++
		return token{typ: tokDot, text: ".", pos: start}
	}

	// Consume and report the whole rune, not its first byte.
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return token{typ: tokIllegal, text: fmt.Sprintf("unexpected character %q", r), pos: start}
}

// keywordType maps the case-insensitive keywords of the dialect; anything
// else is a plain identifier.
func keywordType(word string) tokenType {
	switch strings.ToUpper(word) {
	case "AND":
		return tokAnd
	case "OR":
		return tokOr
	case "NOT":
		return tokNot
	case "TRUE":
		return tokTrue
	case "FALSE":
		return tokFalse
	}
	return tokIdent
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
