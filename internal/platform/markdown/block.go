package markdown

import "strings"

// Block is a region of a note body owned by the program, delimited by two
// html comment markers that survive most markdown renderers.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- " + name + ":start -->",
		End:   "<!-- " + name + ":end -->",
	}
}

// Replace swaps the block contents for generated, appending a new block when
// body has none. Text outside the markers is kept verbatim.
func (b Block) Replace(body, generated string) string {
	block := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End

	if start, end, ok := b.find(body); ok {
		return body[:start] + block + body[end:]
	}
	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Contents returns what sits between the markers, without the surrounding
// newlines.
func (b Block) Contents(body string) (string, bool) {
	start, end, ok := b.find(body)
	if !ok {
		return "", false
	}
	inner := body[start+len(b.Start) : end-len(b.End)]
	return strings.Trim(inner, "\n"), true
}

func (b Block) find(body string) (int, int, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return 0, 0, false
	}
	end := strings.Index(body[start:], b.End)
	if end < 0 {
		return 0, 0, false
	}
	return start, start + end + len(b.End), true
}
