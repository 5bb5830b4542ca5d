package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/blackjack/internal/rules"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every subcommand
type Globals struct {
	RulesFile string `name:"rules" short:"r" type:"path" default:"blackjack.hcl" env:"BLACKJACK_RULES" help:"Rules file (HCL); defaults apply when it does not exist"`
	LogLevel  string `default:"info" enum:"debug,info,warn,error" env:"BLACKJACK_LOG_LEVEL" help:"Log level (${enum})"`
	Verbose   bool   `help:"Shorthand for --log-level=debug"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// Logger builds the CLI logger from the log flags
func (g *Globals) Logger() *log.Logger {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if g.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(g.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// RuleSet loads the rules file named by --rules
func (g *Globals) RuleSet() (*rules.RuleSet, error) {
	return rules.LoadFile(g.RulesFile)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds with a strategy and report statistics"`
	Rules    RulesCmd         `cmd:"" help:"Validate a rules file and print the effective rules"`
	Hand     HandCmd          `cmd:"" help:"Evaluate a hand: value, predicates and legal actions"`
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "blackjack:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cli := CLI{Globals: Globals{Stdout: stdout, Stderr: stderr}}
	parser, err := kong.New(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack hand engine, rules checker and strategy simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&cli.Globals)
}
