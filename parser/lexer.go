package parser

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Lexer turns normalized query text into tokens. It never fails: characters
// it cannot classify are skipped and an unterminated string literal simply
// runs until the end of the input.
type Lexer struct {
	input []rune
	index int // Position in input.
}

func NewLexer(text string) *Lexer {
	return &Lexer{
		input: []rune(normalize(text)),
		index: 0,
	}
}

// Tokenize normalizes the given text and turns it into tokens. The returned
// slice always ends with an end-of-input token.
func Tokenize(text string) []*Token {
	return NewLexer(text).read()
}

// normalize lowercases the text, replaces natural language operator phrases
// ("greater than" etc.) with their symbols and collapses whitespace. Quoted
// string literals keep their exact text, including case and inner whitespace.
func normalize(text string) string {
	var sb strings.Builder
	runes := []rune(strings.TrimSpace(text))

	appendNormalized := func(segment string) {
		segment = strings.ToLower(segment)
		for _, op := range operatorPhrases {
			segment = strings.ReplaceAll(segment, op.phrase, " "+op.symbol+" ")
		}
		sb.WriteString(whitespaceRegex.ReplaceAllString(segment, " "))
	}

	segmentStart := 0
	for i := 0; i < len(runes); i++ {
		quoteChar := runes[i]
		if quoteChar != '\'' && quoteChar != '"' {
			continue
		}

		appendNormalized(string(runes[segmentStart:i]))

		// A missing closing quote runs until the end of the input, just like
		// in currentString.
		end := i + 1
		for end < len(runes) && runes[end] != quoteChar {
			end++
		}
		if end < len(runes) {
			end++
		}
		sb.WriteString(string(runes[i:end]))

		segmentStart = end
		i = end - 1
	}
	appendNormalized(string(runes[segmentStart:]))

	return strings.TrimSpace(sb.String())
}

// char returns the rune at the current location or the rune '-1' if there is no next char.
func (l *Lexer) char() rune {
	if l.index >= len(l.input) {
		return -1
	}
	return l.input[l.index]
}

// nextChar returns the next rune, so the one after the rune char() returns, or the rune '-1' if there is no next char.
func (l *Lexer) nextChar() rune {
	if l.index+1 >= len(l.input) {
		return -1
	}
	return l.input[l.index+1]
}

func (l *Lexer) read() []*Token {
	var tokens []*Token
	for l.index < len(l.input) {
		token := l.nextToken()
		if token != nil {
			l.tracef("Found token kind=%s, pos=%d, lexeme=%q", token.Kind, token.StartPosition, token.Lexeme)
			tokens = append(tokens, token)
		}
	}

	tokens = append(tokens, &Token{Kind: TokenKindEndOfInput, Lexeme: "", StartPosition: l.index})
	return tokens
}

func (l *Lexer) nextToken() *Token {
	/*
		Approach:

		Look at the current character l.char() and dispatch on its class:
		digits start a number, quotes start a string, letters and underscores
		start a word (keyword or identifier) and everything else is tried as
		an operator or punctuation. Each token creation has to take care of
		the index, so that we don't end up in an endless loop because the
		index wasn't incremented.
	*/

	for ; l.index < len(l.input); l.index++ {
		char := l.char()
		l.tracef("Process next char")

		if unicode.IsSpace(char) {
			continue
		}

		if unicode.IsDigit(char) {
			return l.currentNumber()
		}

		if char == '\'' || char == '"' {
			return l.currentString()
		}

		if unicode.IsLetter(char) || char == '_' {
			return l.currentWord()
		}

		// Two-char operators before their one-char prefixes, otherwise ">="
		// would tokenize as ">" followed by "=".
		switch char {
		case '>':
			if l.nextChar() == '=' {
				return l.currentMultiCharToken(TokenKindGreaterEqual, 2)
			}
			return l.currentSingleCharToken(TokenKindGreater)
		case '<':
			if l.nextChar() == '=' {
				return l.currentMultiCharToken(TokenKindLessEqual, 2)
			}
			return l.currentSingleCharToken(TokenKindLess)
		case '!':
			if l.nextChar() == '=' {
				return l.currentMultiCharToken(TokenKindNotEquals, 2)
			}
		case '=':
			return l.currentSingleCharToken(TokenKindEquals)
		case ',':
			return l.currentSingleCharToken(TokenKindComma)
		case '(':
			return l.currentSingleCharToken(TokenKindOpeningParenthesis)
		case ')':
			return l.currentSingleCharToken(TokenKindClosingParenthesis)
		case '*':
			return l.currentSingleCharToken(TokenKindStar)
		}

		// Unrecognized character, skip it.
		l.tracef("Skip unrecognized character %q", char)
	}

	return nil
}

func (l *Lexer) currentSingleCharToken(tokenKind TokenKind) *Token {
	token := &Token{
		Kind:          tokenKind,
		Lexeme:        string(l.char()),
		StartPosition: l.index,
	}
	l.index++
	return token
}

func (l *Lexer) currentMultiCharToken(tokenKind TokenKind, chars int) *Token {
	token := &Token{
		Kind:          tokenKind,
		Lexeme:        string(l.input[l.index : l.index+chars]),
		StartPosition: l.index,
	}
	l.index += chars
	return token
}

// currentWord reads a run of letters, digits and underscores and classifies
// it via the keyword table. Unknown words become identifiers.
func (l *Lexer) currentWord() *Token {
	startIndex := l.index

	for ; l.index < len(l.input); l.index++ {
		char := l.char()
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' {
			break
		}
	}

	lexeme := string(l.input[startIndex:l.index])
	if kind, ok := keywords[strings.ToLower(lexeme)]; ok {
		return &Token{
			Kind:          kind,
			Lexeme:        lexeme,
			StartPosition: startIndex,
		}
	}

	return &Token{
		Kind:          TokenKindIdentifier,
		Lexeme:        lexeme,
		StartPosition: startIndex,
	}
}

func (l *Lexer) currentNumber() *Token {
	startIndex := l.index

	for ; l.index < len(l.input); l.index++ {
		char := l.char()
		if !unicode.IsDigit(char) && char != '.' {
			break
		}
	}

	return &Token{
		Kind:          TokenKindNumber,
		Lexeme:        string(l.input[startIndex:l.index]),
		StartPosition: startIndex,
	}
}

// currentString reads a quoted string literal. The lexeme contains the
// contents without the quotes. A missing closing quote consumes the rest of
// the input.
func (l *Lexer) currentString() *Token {
	startIndex := l.index
	quoteChar := l.char()
	l.index++

	contentStart := l.index
	for ; l.index < len(l.input); l.index++ {
		if l.char() == quoteChar {
			break
		}
	}

	lexeme := string(l.input[contentStart:l.index])
	if l.index < len(l.input) {
		// Consume the closing quote
		l.index++
	}

	return &Token{
		Kind:          TokenKindString,
		Lexeme:        lexeme,
		StartPosition: startIndex,
	}
}

func (l *Lexer) tracef(format string, args ...any) {
	formattedMessage := format
	if len(args) > 0 {
		formattedMessage = fmt.Sprintf(format, args...)
	}
	sigolo.Traceb(1, "[%d, %q] %s", l.index, l.char(), formattedMessage)
}
