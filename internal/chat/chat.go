// internal/chat/chat.go
// Package chat implements the interactive line-oriented command loop.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mwiater/studybot/internal/assistant"
	"github.com/mwiater/studybot/internal/docs"
	"github.com/mwiater/studybot/internal/logging"
)

// Resolver is the slice of the assistant the loop dispatches to.
type Resolver interface {
	ResolveFormula(ctx context.Context, query string) (assistant.Answer, error)
	ResolvePDFQuestion(ctx context.Context, filename, question string) (assistant.Answer, error)
}

// FileLister enumerates available PDF documents.
type FileLister interface {
	List() []string
}

// Session is one interactive run of the command loop.
type Session struct {
	resolver Resolver
	lister   FileLister
	in       io.Reader
	out      io.Writer
}

// NewSession wires a Session over the given input and output streams.
func NewSession(resolver Resolver, lister FileLister, in io.Reader, out io.Writer) *Session {
	return &Session{
		resolver: resolver,
		lister:   lister,
		in:       in,
		out:      out,
	}
}

// Run reads commands until exit/quit or end of input. Command failures are
// printed and the loop continues; only input exhaustion or a scanner error
// ends the session.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "🔍 AI Study Bot - Type 'help' for commands")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			s.failf("Please enter a command. Type 'help' for available commands.")
			continue
		}

		logging.LogEvent("user input received: %q", line)
		lower := strings.ToLower(line)

		switch {
		case lower == "exit" || lower == "quit":
			logging.LogEvent("exiting the bot")
			return nil

		case lower == "help":
			s.printHelp()

		case lower == "list":
			s.printList()

		case strings.HasPrefix(lower, "pdf "):
			filename, question := splitPDFArgs(line[4:])
			if filename == "" || question == "" {
				fmt.Fprintln(s.out, "Usage: pdf filename.pdf 'your question'")
				continue
			}
			s.handlePDF(ctx, filename, question)

		case strings.HasPrefix(lower, "ask "):
			s.handleAsk(ctx, strings.TrimSpace(line[4:]))

		default:
			s.failf("Invalid command. Type 'help' for available commands.")
		}
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "\nCommands:")
	fmt.Fprintln(s.out, "ask <question> - Get a formula")
	fmt.Fprintln(s.out, "pdf <filename> <question> - Query a PDF")
	fmt.Fprintln(s.out, "list - Show available PDFs")
	fmt.Fprintln(s.out, "exit - Quit")
}

func (s *Session) printList() {
	files := s.lister.List()
	if len(files) == 0 {
		fmt.Fprintln(s.out, "\nNo PDFs found")
		return
	}
	fmt.Fprintln(s.out, "\nAvailable PDFs:")
	for _, f := range files {
		fmt.Fprintf(s.out, "- %s\n", f)
	}
}

func (s *Session) handleAsk(ctx context.Context, query string) {
	if query == "" {
		s.failf("Please enter a command. Type 'help' for available commands.")
		return
	}
	ans, err := s.resolver.ResolveFormula(ctx, query)
	if err != nil {
		s.failf("Error: %v", err)
		return
	}
	fmt.Fprintln(s.out, FormatAnswer(ans))
}

func (s *Session) handlePDF(ctx context.Context, filename, question string) {
	ans, err := s.resolver.ResolvePDFQuestion(ctx, filename, question)
	if err != nil {
		s.failf("Error: %s", DescribeDocumentError(err))
		return
	}
	fmt.Fprintln(s.out, FormatAnswer(ans))
}

// splitPDFArgs splits the remainder of a pdf command into the filename and
// the question, which keeps its internal whitespace.
func splitPDFArgs(rest string) (filename, question string) {
	rest = strings.TrimSpace(rest)
	sp := strings.IndexAny(rest, " \t")
	if sp < 0 {
		return rest, ""
	}
	return rest[:sp], strings.TrimSpace(rest[sp+1:])
}

// failf prints a user-facing failure line prefixed with the error marker.
func (s *Session) failf(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", color.RedString("❌"), fmt.Sprintf(format, args...))
}

// FormatAnswer renders an answer with its provenance header.
func FormatAnswer(ans assistant.Answer) string {
	switch ans.Source {
	case assistant.SourceDatabase:
		return "📘 From Database:\n" + ans.Text
	case assistant.SourceGenerated:
		return "🧠 New Formula:\n" + ans.Text
	default:
		return "📄 PDF Answer:\n" + ans.Text
	}
}

// DescribeDocumentError maps the typed extraction failures onto the exact
// user-facing phrasing; other errors pass through with their full message.
func DescribeDocumentError(err error) string {
	var nfe *docs.NotFoundError
	if errors.As(err, &nfe) {
		return fmt.Sprintf("File '%s' not found.", nfe.Filename)
	}
	if errors.Is(err, docs.ErrEmptyDocument) {
		return "The document is empty or unreadable."
	}
	return err.Error()
}
