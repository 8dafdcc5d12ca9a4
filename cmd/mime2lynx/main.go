package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mime2lynx/config"
	"mime2lynx/desktop"
	"mime2lynx/resolve"
	"mime2lynx/rules"
	"mime2lynx/viewer"
)

func main() {
	app := &cli.App{
		Name:      "mime2lynx",
		Version:   "v0.1.0",
		Compiled:  time.Now(),
		HelpName:  "mime2lynx",
		Usage:     "convert mimeinfo.cache entries into lynx VIEWER directives.",
		UsageText: "mime2lynx [OPTION]... [DIRECTIVE]...",
		ArgsUsage: "[directive]...",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "read `FILE` instead of the default caches; - for stdin",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write VIEWER lines to `FILE` instead of stdout",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only log errors",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		zlog.Fatal().Err(err).Msg("mime2lynx failed")
	}
}

func run(ctx *cli.Context) error {
	setupLogging(ctx.Bool("quiet"), ctx.Bool("verbose"))

	cfgPath := ctx.String("config")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if logfile := cfg.Logfile(); logfile != "" {
		attachLogfile(logfile)
	}

	// Configured directives first, command-line directives after, so
	// the command line has the last word.
	set := rules.NewSet()
	for _, directive := range cfg.Prefer() {
		if err := set.Add(directive); err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", cfgPath, err), 1)
		}
	}
	for app, cmd := range cfg.Exec() {
		set.AddExec(app, cmd)
	}
	for _, directive := range ctx.Args().Slice() {
		if err := set.Add(directive); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	out := io.Writer(os.Stdout)
	if path := ctx.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		out = f
	}

	proc := &viewer.Processor{
		Rules:    set,
		Resolver: resolve.New(set.Exec, nil),
		Out:      out,
	}

	inputs := ctx.StringSlice("input")
	if len(inputs) == 0 {
		inputs = cfg.Inputs()
	}
	if len(inputs) == 0 {
		inputs = desktop.CacheFiles()
		if len(inputs) == 0 {
			return cli.Exit("no mimeinfo.cache found in XDG data directories", 1)
		}
	}

	for _, input := range inputs {
		if err := processInput(proc, input); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}
	return nil
}

func processInput(proc *viewer.Processor, input string) error {
	if input == "-" {
		return proc.Process(os.Stdin, "stdin")
	}
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()
	return proc.Process(f, input)
}

// setupLogging keeps stderr human readable and stdout free for the
// VIEWER lines.
func setupLogging(quiet, verbose bool) {
	switch {
	case quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	})
}

func attachLogfile(path string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		zlog.Warn().Str("path", path).Err(err).Msg("cannot open logfile")
		return
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	zlog.Logger = zlog.Output(zerolog.MultiLevelWriter(console, f))
}
