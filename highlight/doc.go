// Package highlight tokenizes documents for the view-line layer using
// chroma lexers.
//
// [Tokenizer] implements the textmodel tokenizer contract: it lexes the
// whole document, splits multi-line lexer tokens at line boundaries, and
// exposes one token stream per input line with chroma token-type names
// ("Keyword", "LiteralString", ...). Styling layers match on those names
// by prefix.
package highlight
