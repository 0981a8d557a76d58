package encode

const DefaultIndent = 4

type EncodeOption func(*EncState)

// Indent sets the number of spaces per nesting level. Negative values
// are treated as 0.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = max(0, n) }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
