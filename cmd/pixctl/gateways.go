package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"zerovicio/internal/config"
	"zerovicio/internal/domain/entities"
)

func gatewaysCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "gateways",
		Short: "List configured gateway strategies in dispatch order",
		Long: `Prints each strategy with its kind, payload shape, timeout and
whether its required credentials are present. Credential values are never printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(path)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tKIND\tPAYLOAD\tTIMEOUT\tENABLED\tCREDENTIALS")
			for i, s := range store.Strategies() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\t%s\n",
					i+1, s.Name, s.Kind, s.Payload, timeoutLabel(s), s.Enabled, credentialStatus(s))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			settings := store.Settings()
			fmt.Fprintf(cmd.OutOrStdout(), "\nmock fallback: %t  crc: %s  qr: %s\n",
				settings.MockEnabled, settings.CRCMode, settings.QRRenderer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", envOr("CONFIG_FILE", config.DefaultConfigFile), "Path to gateways.yaml")
	return cmd
}

func timeoutLabel(s entities.GatewayStrategy) string {
	if s.Timeout <= 0 {
		return "default"
	}
	return s.Timeout.String()
}

func credentialStatus(s entities.GatewayStrategy) string {
	if len(s.RequiredEnv) == 0 {
		return "-"
	}
	var missing []string
	for _, key := range s.RequiredEnv {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return "ok"
	}
	return "missing " + strings.Join(missing, ",")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
