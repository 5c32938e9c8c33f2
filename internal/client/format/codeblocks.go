// Package format inspects bot replies, which are Markdown, for the parts the
// terminal treats specially.
package format

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is a fenced or indented code block with its raw contents.
type CodeBlock struct {
	Language string
	Code     string
}

// Lines counts the lines of code in b.
func (b CodeBlock) Lines() int {
	if b.Code == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(b.Code, "\n"), "\n") + 1
}

var md = goldmark.New()

// CodeBlocks returns the code blocks of a Markdown document in order.
func CodeBlocks(markdown string) []CodeBlock {
	src := []byte(markdown)
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch b := n.(type) {
		case *ast.FencedCodeBlock:
			blocks = append(blocks, CodeBlock{Language: string(b.Language(src)), Code: rawLines(b, src)})
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			blocks = append(blocks, CodeBlock{Code: rawLines(b, src)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
