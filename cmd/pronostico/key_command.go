package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newKeyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Gestionar la API key de Gemini",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key>",
		Short: "Guardar la API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			if err := services.KeyService.SetAPIKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key guardada.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Mostrar la API key (enmascarada)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, _, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}
			key, err := services.KeyService.GetAPIKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), maskKey(key))
			return nil
		},
	})

	return cmd
}

func maskKey(key string) string {
	if key == "" {
		return "(sin configurar)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
