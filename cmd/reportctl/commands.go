package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reportapi/internal/cache"
	"reportapi/internal/config"
	"reportapi/internal/curriculum"
	"reportapi/internal/logger"
	"reportapi/internal/render"
	"reportapi/internal/service"
	"reportapi/internal/source"
)

type rootOptions struct {
	dir      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "reportctl",
		Short:        "Build curriculum reports from course record files",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dir, "dir", cfg.Source.Dir, "directory of .json/.yaml course record files (SOURCE_DIR)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level")

	root.AddCommand(
		newProgramsCmd(opts),
		newFiltersCmd(opts),
		newGenerateCmd(opts, cfg.Reports.Format),
	)
	return root
}

// reportService wires the same report service the API uses over a directory source.
func (o *rootOptions) reportService(format string) (service.ReportService, error) {
	if o.dir == "" {
		return nil, errors.New("--dir is required")
	}
	log, err := logger.New(o.logLevel)
	if err != nil {
		return nil, err
	}
	src := source.NewDirSource(o.dir)
	ds := cache.New(func(ctx context.Context) (*curriculum.Dataset, error) {
		return source.LoadDataset(ctx, src)
	}, 0)
	return service.NewReportService(ds, format, log), nil
}

func newProgramsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the study programs found in the record files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.reportService("")
			if err != nil {
				return err
			}
			programs, err := svc.Programs(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range programs {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newFiltersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Show the discipline types, regimes and study years found in the record files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.reportService("")
			if err != nil {
				return err
			}
			f, err := svc.Filters(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "types:   %s\n", strings.Join(f.Types, ", "))
			fmt.Fprintf(out, "regimes: %s\n", strings.Join(f.Regimes, ", "))
			fmt.Fprintf(out, "years:   %s\n", strings.Join(f.Years, ", "))
			return nil
		},
	}
}

type generateOptions struct {
	program string
	types   []string
	regimes []string
	years   []string
	format  string
	out     string
	zip     bool
}

func newGenerateCmd(opts *rootOptions, defaultFormat string) *cobra.Command {
	g := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the six reports for one program",
		Long: "Write the six reports for one program into --out.\n" +
			"An omitted --type/--regime/--year keeps every value; an empty one (--year=) keeps none.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel := curriculum.Selection{Program: g.program}
			if cmd.Flags().Changed("type") {
				sel.Types = g.types
			}
			if cmd.Flags().Changed("regime") {
				sel.Regimes = g.regimes
			}
			if cmd.Flags().Changed("year") {
				sel.Years = g.years
			}
			return g.run(cmd, opts, sel)
		},
	}
	cmd.Flags().StringVar(&g.program, "program", "", "study program (required)")
	cmd.Flags().StringSliceVar(&g.types, "type", nil, "discipline types to keep")
	cmd.Flags().StringSliceVar(&g.regimes, "regime", nil, "regimes to keep")
	cmd.Flags().StringSliceVar(&g.years, "year", nil, "study years to keep")
	cmd.Flags().StringVar(&g.format, "format", defaultFormat, "docx, csv or xlsx")
	cmd.Flags().StringVar(&g.out, "out", ".", "output directory")
	cmd.Flags().BoolVar(&g.zip, "zip", false, "write one zip archive instead of six files")
	_ = cmd.MarkFlagRequired("program")
	return cmd
}

func (g *generateOptions) run(cmd *cobra.Command, opts *rootOptions, sel curriculum.Selection) error {
	svc, err := opts.reportService(g.format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(g.out, 0o755); err != nil {
		return err
	}

	var docs []*render.Document
	if g.zip {
		doc, err := svc.Bundle(cmd.Context(), sel, "")
		if err != nil {
			return g.explain(cmd, err)
		}
		docs = append(docs, doc)
	} else {
		for _, v := range curriculum.Views {
			doc, err := svc.Render(cmd.Context(), sel, v.Key, "")
			if err != nil {
				return g.explain(cmd, err)
			}
			docs = append(docs, doc)
		}
	}

	for _, doc := range docs {
		path := filepath.Join(g.out, doc.Filename)
		if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// explain turns an empty selection into a message instead of a failure.
func (g *generateOptions) explain(cmd *cobra.Command, err error) error {
	if errors.Is(err, curriculum.ErrEmptyResult) {
		fmt.Fprintf(cmd.OutOrStdout(), "no course of %q matches the selection\n", g.program)
		return nil
	}
	return err
}
