package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-drift/preview/cmd/previewsim/internal/sim"
	"github.com/go-drift/preview/pkg/config"
	"github.com/go-drift/preview/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "simulate",
		Short: "Replay a gesture script",
		Long: `Replay a YAML gesture script and print one line per changed frame:
elapsed time, phase, position, scale, opacity and the CSS transform of the
current item.

Tuning is read from preview.yaml in the current directory when present.

Script format:
  viewport: {width: 800, height: 600}
  image: {width: 800, height: 400}
  items: [a.jpg, b.jpg, c.jpg]
  steps:
    - drag: {from: [400, 300], by: [-240, 0], duration: 160ms}
    - wait: 400ms
    - double_tap: [400, 300]
    - action: rotate_right

Flags:
  --config FILE   Read tuning from FILE instead of ./preview.yaml
  --all           Print every frame, not only frames that changed`,
		Usage: "previewsim simulate <script.yaml> [--config FILE] [--all]",
		Run:   runSimulate,
	})
}

type simulateOptions struct {
	script     string
	configPath string
	all        bool
}

func parseSimulateArgs(args []string) (simulateOptions, error) {
	var opts simulateOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--all":
			opts.all = true
		case arg == "--config":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--config requires a file path")
			}
			opts.configPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown flag %q", arg)
		case opts.script == "":
			opts.script = arg
		default:
			return opts, fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if opts.script == "" {
		return opts, fmt.Errorf("script path is required\n\nUsage: previewsim simulate <script.yaml>")
	}
	return opts, nil
}

func runSimulate(env *Env, args []string) error {
	opts, err := parseSimulateArgs(args)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.script)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := sim.ParseScript(data)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.script, err)
	}

	var cfg *config.File
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	// Route engine error reports through the CLI logger.
	errors.SetHandler(&logHandler{log: env.Log})
	defer errors.SetHandler(nil)

	run := sim.Options{AllFrames: opts.all, Logger: env.Log}
	cfg.Apply(&run.Base)
	env.Log.V(1).Info("replaying", "script", opts.script, "steps", len(script.Steps), "items", len(script.Items))

	return sim.Run(script, run, func(r sim.Record) {
		fmt.Fprintln(env.Stdout, r.String())
	})
}
