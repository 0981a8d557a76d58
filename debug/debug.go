package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens bool
	Parse  bool
	Encode bool
	Match  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("MLFMT_DEBUG_TOKENS")
	d.Parse = boolEnv("MLFMT_DEBUG_PARSE")
	d.Encode = boolEnv("MLFMT_DEBUG_ENCODE")
	d.Match = boolEnv("MLFMT_DEBUG_MATCH")
	d.Patch = boolEnv("MLFMT_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Match() bool {
	return d.Match
}
func Patch() bool {
	return d.Patch
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
