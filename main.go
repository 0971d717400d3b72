package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/op/go-logging"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonkit/internal/analyzer"
	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/formatter"
	"github.com/mcncl/jsonkit/internal/models"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/mcncl/jsonkit/internal/tokenizer"
	"github.com/mcncl/jsonkit/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to a YAML config file. Defaults to the nearest .jsonkit.yml." short:"c" type:"path"`
	Mode        string `help:"What to print: write, tokens, tree, stats or check." short:"m"`
	Strict      bool   `help:"Require commas between items and reject trailing commas."`
	MaxDepth    int    `help:"Maximum nesting of objects and arrays. 0 uses the built-in limit." name:"max-depth"`
	Keys        string `help:"Rename object keys: none, snake, camel, lower-camel or kebab." short:"k"`
	Color       string `help:"Color output: auto, always or never."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, reading a document until Ctrl+D." short:"I"`
	Demo        bool   `help:"Run a built-in sample document through every stage."`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config

	// Stdin, Stdout and Stderr default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	log *logging.Logger
}

func (c *Context) stdin() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

func (c *Context) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// Version information
const (
	Version = "0.1.0"
)

const demoDocument = "{\n  \"object\": {\n    \"array\": [\n      \"string\",\n      {},\n      [\"nested array string\"]\n    ]\n  }\n}"

func main() {
	// Parse CLI arguments with Kong
	cli := kong.Must(&CLI,
		kong.Name("jsonkit"),
		kong.Description("Tokenize, parse and canonically rewrite JSON-like documents"),
		kong.UsageOnError(),
	)

	if _, err := cli.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError() has already printed usage
		os.Exit(1)
	}

	// No arguments at all means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if CLI.Version {
		fmt.Printf("jsonkit version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{Debug: cfg.Dev.Debug, Config: cfg}
	if CLI.Demo {
		err = runDemo(ctx)
	} else {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// A failed check is an answer, not a usage problem
		if !stderrors.Is(err, errors.ErrNotCanonical) {
			fmt.Fprintf(os.Stderr, "\nFor help, run: jsonkit --help\n")
		}
		os.Exit(1)
	}
}

// loadConfig merges the config file, if any, with the command-line flags.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	return config.LoadConfigWithCLI(path, config.Overrides{
		Mode:     CLI.Mode,
		Color:    CLI.Color,
		KeyStyle: CLI.Keys,
		Strict:   CLI.Strict,
		Debug:    CLI.Debug,
		MaxDepth: CLI.MaxDepth,
	})
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the raw document
	text, err := readInput(ctx)
	if err != nil {
		return err
	}
	debugf(ctx, "read %d bytes", len(text))

	mode := ctx.Config.Output.Mode
	colored := useColor(ctx)

	// The token stream is printed before any parsing happens
	if mode == config.ModeTokens {
		tokens, err := tokenizer.Tokenize(text)
		if err != nil {
			return errors.NewTokenizeError("failed to tokenize document", err)
		}
		debugf(ctx, "scanned %d tokens", len(tokens))
		lines := make([]string, len(tokens))
		for i, tok := range tokens {
			lines[i] = tok.String()
		}
		return writeOutput(ctx, strings.Join(lines, "\n"))
	}

	// 2. Parse into a value tree
	root, err := parser.ParseString(text,
		parser.WithStrict(ctx.Config.Parser.Strict),
		parser.WithMaxDepth(ctx.Config.Parser.MaxDepth),
	)
	if err != nil {
		return err
	}
	debugf(ctx, "parsed root object with %d members", root.Len())

	// 3. Rename keys if requested
	value, err := transform.RenameKeys(root, transform.KeyStyle(ctx.Config.Keys.Style))
	if err != nil {
		return err
	}

	// 4. Render for the selected mode
	switch mode {
	case config.ModeTree:
		return writeOutput(ctx, models.Debug(value))
	case config.ModeStats:
		summary := analyzer.NewAnalyzer().Analyze(value)
		data, err := yaml.Marshal(summary)
		if err != nil {
			return errors.NewOutputError("failed to encode summary", err)
		}
		return writeOutput(ctx, string(data))
	case config.ModeCheck:
		canonical := formatter.NewFormatter(false).Format(value)
		if !formatter.Changed(text, canonical) {
			debugf(ctx, "document is canonical")
			return nil
		}
		if err := writeOutput(ctx, formatter.Diff(text, canonical, colored)); err != nil {
			return err
		}
		return errors.NewOutputError("check failed", errors.ErrNotCanonical)
	default:
		return writeOutput(ctx, formatter.NewFormatter(colored).Format(value))
	}
}

// runDemo prints a sample document at every stage of the pipeline.
func runDemo(ctx *Context) error {
	out := ctx.stdout()

	tokens, err := tokenizer.Tokenize(demoDocument)
	if err != nil {
		return errors.NewTokenizeError("failed to tokenize demo document", err)
	}
	root, err := parser.ParseTokens(tokens)
	if err != nil {
		return err
	}

	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.String()
	}

	fmt.Fprintf(out, "Initial document:\n%s\n\n", demoDocument)
	fmt.Fprintf(out, "Token stream:\n[%s]\n\n", strings.Join(names, ", "))
	fmt.Fprintf(out, "Value tree:\n%s\n\n", models.Debug(root))
	fmt.Fprintf(out, "Written back:\n%s\n", formatter.NewFormatter(useColor(ctx)).Format(root))
	return nil
}

// readInput reads the document from a file, piped stdin or an interactive terminal
func readInput(ctx *Context) (string, error) {
	if CLI.Input != "" {
		debugf(ctx, "reading %s", CLI.Input)
		return parser.ReadFile(CLI.Input)
	}

	in := ctx.stdin()
	if isTerminal(in) {
		if CLI.Interactive {
			return readInteractiveInput(ctx, in)
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// readInteractiveInput lets users paste a document and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context, in io.Reader) (string, error) {
	fmt.Fprintln(ctx.stderr(), "jsonkit Interactive Mode")
	fmt.Fprintln(ctx.stderr(), "Paste your document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var b strings.Builder
	for {
		line, err := reader.ReadString('\n')
		b.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(ctx.stderr(), "\nProcessing document...")
	return text, nil
}

// writeOutput writes out to a file or stdout
func writeOutput(ctx *Context, out string) error {
	out = strings.TrimRight(out, "\n")
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(ctx.stderr(), "Output written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.stdout(), out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// useColor resolves the configured color mode. Files never get color.
func useColor(ctx *Context) bool {
	switch ctx.Config.Output.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if CLI.Output != "" || color.NoColor {
		return false
	}
	return isTerminal(ctx.stdout())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var plainLogFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} [%{level:.4s}] %{message}`,
)

var colorLogFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} [%{level:.4s}]%{color:reset} %{message}`,
)

// logger returns the context's logger, creating it on first use. Debug
// messages are dropped unless ctx.Debug is set.
func (c *Context) logger() *logging.Logger {
	if c.log != nil {
		return c.log
	}
	format := plainLogFormat
	if isTerminal(c.stderr()) {
		format = colorLogFormat
	}
	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(logging.NewLogBackend(c.stderr(), "", 0), format),
	)
	level := logging.WARNING
	if c.Debug {
		level = logging.DEBUG
	}
	backend.SetLevel(level, "jsonkit")

	c.log = logging.MustGetLogger("jsonkit")
	c.log.SetBackend(backend)
	return c.log
}

func debugf(ctx *Context, format string, args ...any) {
	ctx.logger().Debugf(format, args...)
}
