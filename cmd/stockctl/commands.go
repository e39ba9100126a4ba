package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockops/internal/application/inventory"
	"github.com/jhoicas/stockops/internal/domain"
	"github.com/jhoicas/stockops/internal/infrastructure/postgres"
)

var errRejected = errors.New("rechazado")

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema embebido en PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.container.Pool == nil {
				return fmt.Errorf("migrate requiere STORE_BACKEND=postgres")
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			applied, err := postgres.Migrate(ctx, c.container.Pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "esquema al día")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
			}
			return nil
		},
	}
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <operation-id>",
		Short: "Valida y aplica una operación en estado READY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()
			res := c.container.ValidateOperation.ValidateOperation(ctx, args[0])
			if err := printJSON(cmd, res); err != nil {
				return err
			}
			if !res.OK {
				return fmt.Errorf("%w: %s", errRejected, res.Error)
			}
			return nil
		},
	}
}

func (c *cli) adjustCmd() *cobra.Command {
	var (
		productID, location, counted, reason, key string
	)
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Ajusta el stock de un producto a la cantidad contada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qty, err := decimal.NewFromString(counted)
			if err != nil {
				return fmt.Errorf("--counted inválido: %w", err)
			}
			ctx, cancel := c.context(cmd)
			defer cancel()
			id, err := c.container.CreateAdjustment.CreateAdjustment(ctx, inventory.AdjustmentInput{
				ProductID:      productID,
				Location:       location,
				CountedQty:     qty,
				Reason:         reason,
				IdempotencyKey: key,
			})
			if err != nil {
				_ = printJSON(cmd, map[string]string{"id": "", "error": domain.Reason(err)})
				return fmt.Errorf("%w: %s", errRejected, domain.Reason(err))
			}
			return printJSON(cmd, map[string]string{"id": id})
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "ID del producto")
	cmd.Flags().StringVar(&location, "location", "", "Ubicación contada")
	cmd.Flags().StringVar(&counted, "counted", "", "Cantidad contada (>= 0)")
	cmd.Flags().StringVar(&reason, "reason", "", "Motivo del ajuste")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Clave para reintentos seguros")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("counted")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
