package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Últimos análisis guardados",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}

			items, err := services.HistoryService.List()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "El historial está vacío.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for i, item := range items {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					item.CreatedAt().Format(time.DateTime),
					strconv.Itoa(len(item.Results)),
					item.ID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Fecha", "Partidos", "ID"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the history as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Borrar el historial",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			if err := services.HistoryService.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Historial borrado.")
			return nil
		},
	})

	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <n>",
		Short: "Mostrar el análisis número n del historial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid index %q", args[0])
			}

			services, _, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			items, err := services.HistoryService.List()
			if err != nil {
				return err
			}
			if n > len(items) {
				return fmt.Errorf("history has %d items", len(items))
			}

			results := items[n-1].Results
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the results as JSON")
	return cmd
}
