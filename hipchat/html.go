// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// TableHTML renders rows as an HTML table. When header is true the
// first row's cells are wrapped in <b>. Cell text is inserted verbatim;
// callers sending untrusted text must escape it first.
func TableHTML(rows [][]string, header bool) string {
	var builder strings.Builder
	builder.WriteString("<table>")
	for index, row := range rows {
		bold := header && index == 0
		builder.WriteString("<tr>")
		for _, cell := range row {
			builder.WriteString("<td>")
			if bold {
				builder.WriteString("<b>")
			}
			builder.WriteString(cell)
			if bold {
				builder.WriteString("</b>")
			}
			builder.WriteString("</td>")
		}
		builder.WriteString("</tr>")
	}
	builder.WriteString("</table>")
	return builder.String()
}

// ListHTML renders items as an HTML unordered list. Item text is
// inserted verbatim.
func ListHTML(items []string) string {
	var builder strings.Builder
	builder.WriteString("<ul>")
	for _, item := range items {
		builder.WriteString("<li>")
		builder.WriteString(item)
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>")
	return builder.String()
}

// codeStyle is the chroma style for fenced code blocks. HipChat strips
// <style> elements, so highlighting is emitted as inline styles.
const codeStyle = "github"

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 100)),
			),
		)
	})
	return markdownInstance
}

// RenderMarkdown converts GitHub-flavored markdown to HTML suitable for
// a FormatHTML room message. Fenced code blocks with a language tag are
// syntax highlighted.
func RenderMarkdown(source string) (string, error) {
	var output bytes.Buffer
	if err := markdown().Convert([]byte(source), &output); err != nil {
		return "", fmt.Errorf("hipchat: rendering markdown: %w", err)
	}
	return strings.TrimRight(output.String(), "\n"), nil
}

// codeBlockRenderer replaces goldmark's fenced code block output with
// chroma-highlighted HTML.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(registerer renderer.NodeRendererFuncRegisterer) {
	registerer.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(writer util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block := node.(*ast.FencedCodeBlock)

	var code strings.Builder
	lines := block.Lines()
	for index := 0; index < lines.Len(); index++ {
		line := lines.At(index)
		code.Write(line.Value(source))
	}

	if err := highlight(writer, code.String(), string(block.Language(source))); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// highlight writes code as a highlighted <pre> block. An unknown or
// empty language falls back to plain text.
func highlight(writer util.BufWriter, code, language string) error {
	lexer := lexers.Get(language)
	if language == "" || lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(codeStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenising %s code block: %w", language, err)
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false))
	return formatter.Format(writer, style, iterator)
}
