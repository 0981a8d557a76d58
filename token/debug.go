package token

import (
	"fmt"
	"io"
	"strconv"
)

// WriteTokens writes one line per token: type, position and literal.
func WriteTokens(w io.Writer, toks []Token) error {
	for i := range toks {
		t := &toks[i]
		_, err := fmt.Fprintf(w, "%d:%d\t%-12s %s\n", t.Pos.LineNo, t.Pos.AtLine+1, t.Type, strconv.Quote(t.Literal()))
		if err != nil {
			return err
		}
	}
	return nil
}
