package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithMode(ModePlain))

	p.Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestPrinter_PlainModeStripsANSI(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithMode(ModePlain))

	p.Println("\x1b[31mred\x1b[0m")
	assert.Equal(t, "red\n", buf.String())
}

func TestPrinter_PrintMarkdownPlainFallback(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithMode(ModePlain))

	p.PrintMarkdown("## Title\n\n- item")
	out := buf.String()
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "item")
}

func TestPrinter_ErrorlnPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithMode(ModePlain))

	p.Errorln("bad")
	assert.Equal(t, "bad\n", buf.String())
}

func TestPrinter_StyledMarkdownRenders(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(WithWriter(&buf), WithMode(ModeStyled))

	p.PrintMarkdown("# Heading")
	assert.True(t, strings.Contains(buf.String(), "Heading"))
}
