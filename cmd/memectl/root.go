package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts globalOptions
	ctx := newCommandContext(&opts)

	rootCmd := &cobra.Command{
		Use:           "memectl",
		Short:         "Meme generation gateway CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.backendURL, "backend-url", "", "Generation backend base URL (default $BACKEND_URL)")
	flags.StringVar(&opts.databaseURL, "database-url", "", "History database URL (default $DATABASE_URL)")
	flags.DurationVar(&opts.maxWait, "max-wait", 0, "Override the poll budget")
	flags.DurationVar(&opts.interval, "interval", 0, "Override the poll interval")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log backend calls to stderr")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newRegenerateCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newLastFrameCommand())

	return rootCmd
}
