package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"zerovicio/internal/domain/pix"
)

func mockCodeCmd() *cobra.Command {
	var (
		price string
		name  string
		city  string
		txid  string
		crc   string
	)

	cmd := &cobra.Command{
		Use:   "mock-code",
		Short: "Print a development BR Code copy-and-paste string",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}
			gen, err := pix.NewGenerator(pix.CRCMode(crc))
			if err != nil {
				return err
			}
			if txid == "" {
				txid = uuid.NewString()
			}

			code, err := gen.Generate(pix.Params{
				TransactionID: txid,
				Amount:        amount,
				MerchantName:  name,
				MerchantCity:  city,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "Amount in BRL, e.g. 167.90")
	cmd.Flags().StringVar(&name, "name", "ZERO VICIOS", "Merchant name (max 25 chars)")
	cmd.Flags().StringVar(&city, "city", "SAO PAULO", "Merchant city (max 15 chars)")
	cmd.Flags().StringVar(&txid, "txid", "", "Reference label (default: random UUID)")
	cmd.Flags().StringVar(&crc, "crc", string(pix.CRCModePlaceholder), "CRC mode: placeholder or crc16")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}
