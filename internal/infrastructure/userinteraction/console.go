package userinteraction

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.EventPrinter = (*ConsolePrinter)(nil)

// ConsolePrinter renders runner events as a readable transcript.
type ConsolePrinter struct {
	out io.Writer
}

func NewConsolePrinter(out io.Writer) *ConsolePrinter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePrinter{out: out}
}

func (p *ConsolePrinter) PrintUser(message string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprint(p.out, "\nUser > ")
	fmt.Fprintln(p.out, message)
}

func (p *ConsolePrinter) PrintEvent(event entity.Event, verbose bool) {
	if event.Content == nil {
		return
	}

	for _, part := range event.Content.Parts {
		switch {
		case part.Text != "":
			if strings.TrimSpace(part.Text) == "" {
				continue
			}
			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(p.out, "%s > ", event.Author)
			fmt.Fprintln(p.out, strings.TrimSpace(part.Text))

		case part.FunctionCall != nil && verbose:
			p.printToolCall(*part.FunctionCall)

		case part.FunctionResponse != nil && verbose:
			p.printToolResult(*part.FunctionResponse)
		}
	}
}

func (p *ConsolePrinter) printToolCall(call entity.ToolCall) {
	icon, name := getToolDisplay(call.Name)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(p.out, "%s %s\n", icon, name)

	if summary := formatToolArguments(call.Name, call.Arguments); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(p.out, "   %s\n", summary)
	}
}

func (p *ConsolePrinter) printToolResult(result entity.ToolResult) {
	if result.IsError {
		red := color.New(color.FgRed)
		red.Fprint(p.out, "x Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(p.out, truncate(result.Output, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(p.out, "✓ %s\n", formatToolResult(result.Name, result.Output))
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[string][2]string{
		entity.ToolWebSearch.String(): {"🔎", "Web search"},
		entity.ToolFetchPage.String(): {"🌐", "Fetch page"},
	}

	if display, ok := displays[toolName]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

func formatToolArguments(toolName, arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}

	switch toolName {
	case entity.ToolWebSearch.String():
		if query, ok := args["query"].(string); ok {
			return fmt.Sprintf("Query: %s", truncate(query, 80))
		}

	case entity.ToolFetchPage.String():
		if url, ok := args["url"].(string); ok {
			return fmt.Sprintf("URL: %s", url)
		}
	}

	return ""
}

func formatToolResult(toolName, result string) string {
	switch toolName {
	case entity.ToolFetchPage.String():
		// first line is the page title when one exists
		if first, _, ok := strings.Cut(result, "\n"); ok {
			return truncate(first, 100)
		}
	}

	return truncate(strings.ReplaceAll(result, "\n", " "), 100)
}

// truncate limits s to maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen]) + "..."
}
