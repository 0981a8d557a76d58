package encode

import (
	"strings"

	"github.com/signadot/mlfmt/ir"
)

func MustString(nodes []ir.Node, opts ...EncodeOption) string {
	s, err := EncodeString(nodes, opts...)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(s)
}
