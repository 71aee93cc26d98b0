package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mwiater/studybot/internal/assistant"
	"github.com/mwiater/studybot/internal/docs"
	"github.com/mwiater/studybot/internal/formula"
)

func init() {
	// Keep expected output free of ANSI escapes.
	color.NoColor = true
}

type fakeResolver struct {
	formulaAnswer assistant.Answer
	formulaErr    error
	pdfAnswer     assistant.Answer
	pdfErr        error

	formulaCalls []string
	pdfCalls     [][2]string
}

func (r *fakeResolver) ResolveFormula(ctx context.Context, query string) (assistant.Answer, error) {
	r.formulaCalls = append(r.formulaCalls, query)
	return r.formulaAnswer, r.formulaErr
}

func (r *fakeResolver) ResolvePDFQuestion(ctx context.Context, filename, question string) (assistant.Answer, error) {
	r.pdfCalls = append(r.pdfCalls, [2]string{filename, question})
	return r.pdfAnswer, r.pdfErr
}

type fakeLister struct {
	files []string
}

func (l *fakeLister) List() []string { return l.files }

func runSession(t *testing.T, resolver Resolver, lister FileLister, input string) string {
	t.Helper()
	var out bytes.Buffer
	session := NewSession(resolver, lister, strings.NewReader(input), &out)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

// TestSessionBannerAndExit verifies the banner, the prompt, and that exit
// and quit both terminate the loop.
func TestSessionBannerAndExit(t *testing.T) {
	for _, cmd := range []string{"exit", "quit", "EXIT", "Quit"} {
		out := runSession(t, &fakeResolver{}, &fakeLister{}, cmd+"\n")
		if !strings.Contains(out, "🔍 AI Study Bot - Type 'help' for commands") {
			t.Fatalf("missing banner:\n%s", out)
		}
		if !strings.Contains(out, "You: ") {
			t.Fatalf("missing prompt:\n%s", out)
		}
	}
}

// TestSessionHelp verifies the help listing.
func TestSessionHelp(t *testing.T) {
	out := runSession(t, &fakeResolver{}, &fakeLister{}, "help\nexit\n")
	for _, want := range []string{
		"Commands:",
		"ask <question> - Get a formula",
		"pdf <filename> <question> - Query a PDF",
		"list - Show available PDFs",
		"exit - Quit",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("help output missing %q:\n%s", want, out)
		}
	}
}

// TestSessionList verifies both the populated and the empty list outputs.
func TestSessionList(t *testing.T) {
	out := runSession(t, &fakeResolver{}, &fakeLister{files: []string{"physics.pdf", "chem.pdf"}}, "list\nexit\n")
	if !strings.Contains(out, "Available PDFs:") {
		t.Fatalf("missing list header:\n%s", out)
	}
	if !strings.Contains(out, "- physics.pdf") || !strings.Contains(out, "- chem.pdf") {
		t.Fatalf("missing list entries:\n%s", out)
	}

	out = runSession(t, &fakeResolver{}, &fakeLister{}, "list\nexit\n")
	if !strings.Contains(out, "No PDFs found") {
		t.Fatalf("missing empty message:\n%s", out)
	}
}

// TestSessionInvalidAndEmptyInput verifies that bad input prints a hint and
// never ends the loop.
func TestSessionInvalidAndEmptyInput(t *testing.T) {
	out := runSession(t, &fakeResolver{}, &fakeLister{}, "\nbogus\nexit\n")
	if !strings.Contains(out, "❌ Please enter a command. Type 'help' for available commands.") {
		t.Fatalf("missing empty-input hint:\n%s", out)
	}
	if !strings.Contains(out, "❌ Invalid command. Type 'help' for available commands.") {
		t.Fatalf("missing invalid-command hint:\n%s", out)
	}
}

// TestSessionAsk verifies dispatch of ask commands and the source-tagged
// output headers.
func TestSessionAsk(t *testing.T) {
	resolver := &fakeResolver{
		formulaAnswer: assistant.Answer{Text: "R = V/I", Source: assistant.SourceGenerated},
	}
	out := runSession(t, resolver, &fakeLister{}, "ask resistance formula\nexit\n")
	if !strings.Contains(out, "🧠 New Formula:\nR = V/I") {
		t.Fatalf("missing generated answer:\n%s", out)
	}
	if len(resolver.formulaCalls) != 1 || resolver.formulaCalls[0] != "resistance formula" {
		t.Fatalf("formula calls = %v", resolver.formulaCalls)
	}

	resolver = &fakeResolver{
		formulaAnswer: assistant.Answer{Text: "R = V/I", Source: assistant.SourceDatabase},
	}
	out = runSession(t, resolver, &fakeLister{}, "ask resistance formula\nexit\n")
	if !strings.Contains(out, "📘 From Database:\nR = V/I") {
		t.Fatalf("missing database answer:\n%s", out)
	}
}

// TestSessionPDF verifies argument splitting, usage hints, and error
// phrasing for the pdf command.
func TestSessionPDF(t *testing.T) {
	resolver := &fakeResolver{
		pdfAnswer: assistant.Answer{Text: "It covers circuits.", Source: assistant.SourcePDF},
	}
	out := runSession(t, resolver, &fakeLister{}, "pdf physics.pdf what topics are covered?\nexit\n")
	if !strings.Contains(out, "📄 PDF Answer:\nIt covers circuits.") {
		t.Fatalf("missing pdf answer:\n%s", out)
	}
	if len(resolver.pdfCalls) != 1 {
		t.Fatalf("pdf calls = %v", resolver.pdfCalls)
	}
	if resolver.pdfCalls[0] != [2]string{"physics.pdf", "what topics are covered?"} {
		t.Fatalf("pdf args = %v", resolver.pdfCalls[0])
	}

	// Missing question: usage message, resolver untouched.
	resolver = &fakeResolver{}
	out = runSession(t, resolver, &fakeLister{}, "pdf physics.pdf\nexit\n")
	if !strings.Contains(out, "Usage: pdf filename.pdf 'your question'") {
		t.Fatalf("missing usage message:\n%s", out)
	}
	if len(resolver.pdfCalls) != 0 {
		t.Fatalf("resolver invoked despite missing question: %v", resolver.pdfCalls)
	}
}

// TestSessionPDFErrors verifies the user-facing phrasing of the typed
// extraction failures.
func TestSessionPDFErrors(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&docs.NotFoundError{Filename: "missing.pdf"}, "❌ Error: File 'missing.pdf' not found."},
		{docs.ErrEmptyDocument, "❌ Error: The document is empty or unreadable."},
		{errors.New("process bad.pdf: parse pdf: broken xref"), "❌ Error: process bad.pdf: parse pdf: broken xref"},
	}

	for _, tc := range cases {
		resolver := &fakeResolver{pdfErr: tc.err}
		out := runSession(t, resolver, &fakeLister{}, "pdf doc.pdf question\nexit\n")
		if !strings.Contains(out, tc.want) {
			t.Fatalf("expected %q in output:\n%s", tc.want, out)
		}
	}
}

type stubGenerator struct {
	response string
	calls    int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	return g.response, nil
}

// TestSessionEndToEndFormulaLifecycle drives a real formula store through
// the session: a fresh store file is created, the first ask generates and
// persists, and the second ask is served from the database without another
// model call.
func TestSessionEndToEndFormulaLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulas.json")
	store := formula.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	gen := &stubGenerator{response: "R = V/I"}
	resolver := assistant.New(store, &stubExtractor{}, gen, 10000)

	out := runSession(t, resolver, &fakeLister{}, "ask resistance formula\nexit\n")
	if !strings.Contains(out, "🧠 New Formula:\nR = V/I") {
		t.Fatalf("first ask output:\n%s", out)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var doc map[string]map[string]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	if doc["formulas"]["resistance formula"] != "R = V/I" {
		t.Fatalf("persisted store = %v", doc)
	}

	out = runSession(t, resolver, &fakeLister{}, "ask RESISTANCE FORMULA\nexit\n")
	if !strings.Contains(out, "📘 From Database:\nR = V/I") {
		t.Fatalf("second ask output:\n%s", out)
	}
	if gen.calls != 1 {
		t.Fatalf("model invoked %d times across both asks", gen.calls)
	}
}

type stubExtractor struct{}

func (stubExtractor) Extract(filename string) (string, error) {
	return "", &docs.NotFoundError{Filename: filename}
}

// TestSplitPDFArgs checks the filename/question split keeps the question's
// internal whitespace.
func TestSplitPDFArgs(t *testing.T) {
	filename, question := splitPDFArgs(" notes.pdf   what is  covered? ")
	if filename != "notes.pdf" {
		t.Fatalf("filename = %q", filename)
	}
	if question != "what is  covered?" {
		t.Fatalf("question = %q", question)
	}

	filename, question = splitPDFArgs("notes.pdf")
	if filename != "notes.pdf" || question != "" {
		t.Fatalf("single arg split = %q, %q", filename, question)
	}
}
