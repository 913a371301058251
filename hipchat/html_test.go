// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"strings"
	"testing"
)

func TestTableHTML(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"c", "d"}}

	t.Run("header row", func(t *testing.T) {
		expected := "<table><tr><td><b>a</b></td><td><b>b</b></td></tr><tr><td>c</td><td>d</td></tr></table>"
		if got := TableHTML(rows, true); got != expected {
			t.Errorf("got  %s\nwant %s", got, expected)
		}
	})

	t.Run("no header row", func(t *testing.T) {
		expected := "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>"
		if got := TableHTML(rows, false); got != expected {
			t.Errorf("got  %s\nwant %s", got, expected)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := TableHTML(nil, true); got != "<table></table>" {
			t.Errorf("unexpected empty table: %s", got)
		}
	})
}

func TestListHTML(t *testing.T) {
	if got := ListHTML([]string{"x", "y"}); got != "<ul><li>x</li><li>y</li></ul>" {
		t.Errorf("unexpected list: %s", got)
	}
	if got := ListHTML(nil); got != "<ul></ul>" {
		t.Errorf("unexpected empty list: %s", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		got, err := RenderMarkdown("Build *green*, see [log](https://ci.example.com/42)")
		if err != nil {
			t.Fatalf("RenderMarkdown failed: %v", err)
		}
		expected := `<p>Build <em>green</em>, see <a href="https://ci.example.com/42">log</a></p>`
		if got != expected {
			t.Errorf("got  %s\nwant %s", got, expected)
		}
	})

	t.Run("list", func(t *testing.T) {
		got, err := RenderMarkdown("- one\n- two\n")
		if err != nil {
			t.Fatalf("RenderMarkdown failed: %v", err)
		}
		if !strings.Contains(got, "<li>one</li>") || !strings.Contains(got, "<ul>") {
			t.Errorf("expected an html list, got %s", got)
		}
	})

	t.Run("fenced code is highlighted inline", func(t *testing.T) {
		got, err := RenderMarkdown("```go\nfunc main() {}\n```\n")
		if err != nil {
			t.Fatalf("RenderMarkdown failed: %v", err)
		}
		if !strings.Contains(got, "<pre") {
			t.Errorf("expected a pre block, got %s", got)
		}
		if !strings.Contains(got, "style=") {
			t.Errorf("expected inline styles, got %s", got)
		}
		if !strings.Contains(got, "main") {
			t.Errorf("code text missing from output: %s", got)
		}
	})

	t.Run("fenced code without language", func(t *testing.T) {
		got, err := RenderMarkdown("```\nplain text\n```\n")
		if err != nil {
			t.Fatalf("RenderMarkdown failed: %v", err)
		}
		if !strings.Contains(got, "plain text") {
			t.Errorf("code text missing from output: %s", got)
		}
	})
}
