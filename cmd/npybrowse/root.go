package main

import (
	"github.com/spf13/cobra"

	"npybrowse/internal/config"
)

// rootCmd browses a directory tree; the list subcommand browses a flat
// listing of the working directory.
func rootCmd() *cobra.Command {
	opts := config.Default()

	cmd := &cobra.Command{
		Use:   "npybrowse [folder]",
		Short: "Browse numpy arrays in the terminal",
		Long: `npybrowse shows the .npy files below a folder and plots the selected one:
1-D arrays and 2xN / Nx2 arrays as line plots, other matrices as heatmaps.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Mode = config.ModeTree
			if len(args) > 0 {
				opts.Root = args[0]
			}
			return run(opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.Ext, "ext", "e", "npy", "file extension to browse")
	flags.StringVar(&opts.LogFile, "log-file", opts.LogFile, "write logs to this file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.SaveDir, "save-dir", opts.SaveDir, "directory for saved figures")
	noWatch := flags.Bool("no-watch", false, "do not watch the folder for changes")
	cmd.PersistentPreRun = func(*cobra.Command, []string) {
		opts.Watch = !*noWatch
	}

	cmd.AddCommand(listCmd(&opts))
	return cmd
}

func listCmd(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [stems...]",
		Short: "Browse the files of the working directory as a flat list",
		Long: `list shows the matching files of the working directory, or only the given
stems (file names without the extension). 2xN arrays are line plots, every
other matrix is a heatmap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Mode = config.ModeFlat
			opts.Root = ""
			opts.Names = args
			return run(*opts)
		},
	}
}
