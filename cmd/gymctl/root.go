package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/milicode/gym-panel/config"
	"github.com/milicode/gym-panel/internal/app/service"
	"github.com/milicode/gym-panel/pkg/gymapi"
	"github.com/milicode/gym-panel/pkg/logger"
	"github.com/spf13/cobra"
)

type cli struct {
	in  io.Reader
	out io.Writer

	baseURL  string
	timeout  time.Duration
	logLevel string

	api service.BranchAPI
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: in, out: out}

	root := &cobra.Command{
		Use:           "gymctl",
		Short:         "Manage gym branches through the branch API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.connect()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.baseURL, "api", "", "branch API base URL (default from GYM_API_BASE_URL)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "per-request timeout (default from configuration)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newBranchesCmd(c))
	return root
}

// connect builds the API client from configuration and flags.
func (c *cli) connect() error {
	logger.Initialize(logger.Config{
		Level:  c.logLevel,
		Format: "console",
		Output: os.Stderr,
	})

	if c.api != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	apiCfg := gymapi.Config{
		BaseURL:      cfg.API.BaseURL,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}
	if c.baseURL != "" {
		apiCfg.BaseURL = c.baseURL
	}
	if c.timeout > 0 {
		apiCfg.ReadTimeout = c.timeout
		apiCfg.WriteTimeout = c.timeout
	}

	client, err := gymapi.NewClient(apiCfg)
	if err != nil {
		return err
	}
	c.api = client
	return nil
}
