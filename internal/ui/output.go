package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Out is where styled output goes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

func Title(text string) {
	fmt.Fprintln(Out, TitleStyle.Render(text))
}

func Success(text string) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+text))
}

func Error(text string) {
	fmt.Fprintln(Out, ErrorStyle.Render("✗ "+text))
}

func Warning(text string) {
	fmt.Fprintln(Out, WarningStyle.Render("! "+text))
}

// Dim prints secondary text, indented.
func Dim(text string) {
	fmt.Fprintln(Out, DimStyle.Render("  "+text))
}

func Step(text string) {
	fmt.Fprintln(Out, StepStyle.Render(text))
}

func Command(text string) {
	fmt.Fprintln(Out, CommandStyle.Render(text))
}

func Box(text string) {
	fmt.Fprintln(Out, BoxStyle.Render(text))
}

func URL(text string) {
	fmt.Fprintln(Out, URLStyle.Render(text))
}

func Line() {
	fmt.Fprintln(Out)
}

func Print(text string) {
	fmt.Fprintln(Out, text)
}

func Printf(format string, args ...any) {
	fmt.Fprintf(Out, format, args...)
}

func Indent(text string, level int) string {
	return strings.Repeat("  ", level) + text
}

func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderCommand(text string) string {
	return CommandStyle.Render(text)
}

func RenderURL(text string) string {
	return URLStyle.Render(text)
}

func RenderAccent(text string) string {
	return AccentStyle.Render(text)
}

func RenderHighlight(text string) string {
	return HighlightStyle.Render(text)
}
