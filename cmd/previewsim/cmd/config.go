package cmd

import (
	"fmt"

	"github.com/go-drift/preview/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Print the effective configuration",
		Long: `Load preview.yaml from DIR (default: the current directory), apply it
over the built-in defaults and print the result as YAML.`,
		Usage: "previewsim config [DIR]",
		Run:   runConfig,
	})
}

func runConfig(env *Env, args []string) error {
	dir := "."
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return fmt.Errorf("too many arguments\n\nUsage: previewsim config [DIR]")
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
