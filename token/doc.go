// Package token provides tokenization support for markup documents.
//
// [Tokenize] scans a document into a slice of [Token] terminated by exactly
// one [TEOF] token. Tokenization never fails: characters which start no
// known construct become single rune [TText] tokens, and an unterminated
// quoted string becomes a [TIllegal] token which the parser rejects.
package token
