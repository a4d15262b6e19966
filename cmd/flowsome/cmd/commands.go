package cmd

import (
	"fmt"
	"sort"

	"github.com/flowsome/flowsome/config"
	"github.com/flowsome/flowsome/executor"
	"github.com/flowsome/flowsome/operations/transform"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "run a pipeline, writing every sink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, opts, err := a.load(args[0])
			if err != nil {
				return err
			}
			pipe, err := def.Build(&config.BuildOptions{Executor: opts})
			if err != nil {
				return err
			}
			res, err := pipe.Run(cmd.Context())
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(res.Tables))
			for id := range res.Tables {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				log.Info().Str("sink", id).Int("rows", res.Tables[id].NumRows()).Msg("complete")
			}
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pipeline.yaml>",
		Short: "check a pipeline definition, and the schema of every step, without reading any data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, opts, err := a.load(args[0])
			if err != nil {
				return err
			}
			pipe, err := def.Build(&config.BuildOptions{Executor: opts})
			if err != nil {
				return err
			}
			if _, err := pipe.Frames(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <pipeline.yaml>",
		Short: "print the stages in which each sink's input would be executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, opts, err := a.load(args[0])
			if err != nil {
				return err
			}
			pipe, err := def.Build(&config.BuildOptions{Executor: opts})
			if err != nil {
				return err
			}
			plans, err := pipe.Explain()
			if err != nil {
				return err
			}
			for _, s := range def.Sinks {
				fmt.Fprintf(cmd.OutOrStdout(), "sink %s (%s):\n%s\n", s.ID, opts.Strategy, plans[s.ID])
			}
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var rows int64
	var task string
	cmd := &cobra.Command{
		Use:   "preview <pipeline.yaml>",
		Short: "render the first rows produced by a step, without writing any sink",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must not be negative")
			}
			def, opts, err := a.load(args[0])
			if err != nil {
				return err
			}
			if task == "" {
				task = def.Sinks[0].Input
			}
			pipe, err := def.Build(&config.BuildOptions{Executor: opts})
			if err != nil {
				return err
			}
			frame, err := pipe.Frame(task)
			if err != nil {
				return err
			}
			if frame, err = frame.To(transform.Limit(rows)); err != nil {
				return err
			}
			res, err := executor.Run(cmd.Context(), frame, opts)
			if err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), res.Table)
		},
	}
	cmd.Flags().Int64Var(&rows, "rows", 10, "number of rows to show")
	cmd.Flags().StringVar(&task, "task", "", "the source or step to preview. Defaults to the input of the first sink.")
	return cmd
}
