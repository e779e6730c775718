package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/backmassage/scanseries/internal/config"
	"github.com/backmassage/scanseries/internal/display"
	"github.com/backmassage/scanseries/internal/logging"
	"github.com/backmassage/scanseries/internal/pipeline"
	"github.com/backmassage/scanseries/internal/series"
)

// app carries the state shared by subcommands once the root has loaded
// configuration.
type app struct {
	cfgFile string
	fs      afero.Fs
	cfg     *config.Config
	log     *logging.Logger
}

// close releases the log file, if any. It runs after the command whether or
// not RunE failed.
func (a *app) close() error {
	if a.log == nil {
		return nil
	}
	err := a.log.Close()
	a.log = nil
	return err
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{fs: afero.NewOsFs()}

	root := &cobra.Command{
		Use:   "scanseries",
		Short: "Resolve multi-file ScanImage TIFF acquisitions",
		Long: `scanseries reads the key=value comment embedded in ScanImage TIFF files and
the <prefix>_<suffix>.tif naming convention to decide which files form one
Z/C/T acquisition and in what order.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(cfg)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(a.resolveCmd(), a.scanCmd(), a.sniffCmd())
	return root, a
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Resolve the acquisition a single file belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := series.NewTIFFSession(a.fs, pipeline.SessionOptions(a.cfg), a.log)
			defer s.Close()
			r, err := pipeline.Resolve(a.fs, s, args[0])
			if err != nil {
				return err
			}
			return display.WriteReports(cmd.OutOrStdout(), a.cfg.Output, []display.Report{r})
		},
	}
}

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <dir>",
		Short: "Discover TIFFs in a directory and resolve every series once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Output == config.OutputText {
				display.PrintBanner(cmd.ErrOrStderr())
			}
			dir := config.NormalizeDirArg(args[0])
			res, err := pipeline.Run(cmd.Context(), a.cfg, a.log, a.fs, dir)
			if err != nil {
				return err
			}
			if err := display.WriteReports(cmd.OutOrStdout(), a.cfg.Output, res.Reports); err != nil {
				return err
			}
			if res.Stats.Failed > 0 {
				return fmt.Errorf("%d file(s) failed to resolve", res.Stats.Failed)
			}
			return nil
		},
	}
}

type sniffResult struct {
	Path      string `json:"path"`
	ScanImage bool   `json:"scanImage"`
}

func (a *app) sniffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sniff <file>...",
		Short: "Report whether each file is a ScanImage TIFF",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			open := series.TIFFOpener(a.fs)
			results := make([]sniffResult, 0, len(args))
			for _, path := range args {
				results = append(results, sniffResult{Path: path, ScanImage: series.Sniff(open, path)})
			}

			out := cmd.OutOrStdout()
			if a.cfg.Output == config.OutputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				mark := "no "
				if r.ScanImage {
					mark = "yes"
				}
				if _, err := fmt.Fprintf(out, "%s  %s\n", mark, r.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
