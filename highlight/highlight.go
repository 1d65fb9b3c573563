package highlight

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"go.jacobcolvin.com/viewlines/textmodel"
	"go.jacobcolvin.com/viewlines/tokens"
)

// Tokenizer lexes documents with a chroma lexer and yields per-line token
// streams.
//
// Create instances with [New].
type Tokenizer struct {
	lexer chroma.Lexer
}

var _ textmodel.Tokenizer = (*Tokenizer)(nil)

// TokenizerOption configures a [Tokenizer].
type TokenizerOption func(*Tokenizer)

// WithLexer sets an explicit chroma lexer, bypassing language lookup.
func WithLexer(lexer chroma.Lexer) TokenizerOption {
	return func(t *Tokenizer) {
		t.lexer = lexer
	}
}

// New creates a new [Tokenizer] for the given language name or alias
// ("go", "yaml", ...). An empty or unknown language analyses the content
// on each Tokenize call and falls back to plain text.
func New(language string, opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{}

	if language != "" {
		t.lexer = lexers.Get(language)
		if t.lexer == nil {
			slog.Debug("no lexer for language",
				slog.String("language", language),
			)
		}
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Tokenize implements the textmodel tokenizer contract: one
// [tokens.Tokens] per input line of content.
func (t *Tokenizer) Tokenize(content string) []tokens.Tokens {
	lineCount := strings.Count(content, "\n") + 1

	lexer := t.lexer
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		slog.Debug("tokenise content", slog.Any("error", err))

		return plainLines(lineCount)
	}

	result := make([]tokens.Tokens, lineCount)

	var (
		lineIndex  int
		lineOffset int
	)

	for _, tk := range iterator.Tokens() {
		tokenType := tokens.Type(tk.Type.String())

		parts := strings.Split(tk.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lineIndex++
				lineOffset = 0
			}

			if part == "" || lineIndex >= lineCount {
				continue
			}

			result[lineIndex] = append(result[lineIndex], tokens.Token{
				Start: lineOffset,
				Type:  tokenType,
			})
			lineOffset += utf8.RuneCountInString(part)
		}
	}

	for i, line := range result {
		if line == nil {
			result[i] = tokens.Tokens{{Start: 0}}
		}
	}

	return result
}

func plainLines(count int) []tokens.Tokens {
	result := make([]tokens.Tokens, count)
	for i := range result {
		result[i] = tokens.Tokens{{Start: 0}}
	}

	return result
}
