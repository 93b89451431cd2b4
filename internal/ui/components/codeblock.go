// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/dai-tui/internal/ui/styles"
)

// =============================================================================
// WHOLE-MESSAGE CODE BLOCK
// =============================================================================

// codeOnlyPattern matches text that is nothing but one fenced code block.
var codeOnlyPattern = regexp.MustCompile("^```(\\w+)?\\n([\\s\\S]+?)```\\s*$")

// DefaultCodeLanguage labels fences without a language tag.
const DefaultCodeLanguage = "code"

// SingleCodeBlock reports whether text (after trimming) is exactly one fenced
// code block, returning its language label and body.
func SingleCodeBlock(text string) (language, code string, ok bool) {
	m := codeOnlyPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", "", false
	}
	language = m[1]
	if language == "" {
		language = DefaultCodeLanguage
	}
	return language, m[2], true
}

// CodeBlock is a highlighted, language-labelled code box.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
	theme    *styles.Theme
}

// NewCodeBlock creates a code block.
func NewCodeBlock(theme *styles.Theme, language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
		theme:    theme,
	}
}

// Render draws the label row, then the numbered, highlighted code.
func (c CodeBlock) Render() string {
	code := strings.TrimRight(c.Code, "\n")
	lines := strings.Split(highlightCode(code, c.Language, c.theme.ChromaStyle()), "\n")

	numWidth := len(strconv.Itoa(len(lines)))
	lineNum := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(numWidth).
		Align(lipgloss.Right).
		MarginRight(1)

	var sb strings.Builder
	sb.WriteString(c.theme.CodeLangBadge.Render(c.Language))
	sb.WriteString(" ")
	sb.WriteString(c.theme.CodeCopyHint.Render("ctrl+y to copy"))
	for i, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(lineNum.Render(strconv.Itoa(i + 1)))
		sb.WriteString(line)
	}

	width := c.MaxWidth
	if width < 20 {
		width = 20
	}
	return c.theme.CodeBlock.MaxWidth(width).Render(sb.String())
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode returns ANSI-highlighted code, or code unchanged when chroma
// cannot tokenize it.
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
