package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tourdesk/quote-service/internal/database"
)

var rateSource string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Manage stored exchange rates",
}

var ratesSetCmd = &cobra.Command{
	Use:         "set <from> <to> <rate>",
	Short:       "Record an exchange rate observation",
	Example:     `  quote-service rates set TRY EUR 0.027 --source ecb`,
	Args:        cobra.ExactArgs(3),
	Annotations: map[string]string{needsDatabase: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", args[2], err)
		}
		r, err := database.NewRateStore(database.Pool()).Record(context.Background(), args[0], args[1], rate, rateSource)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s = %s (%s)\n", r.FromCurrency, r.ToCurrency, r.Rate, r.Source)
		return nil
	},
}

var ratesListCmd = &cobra.Command{
	Use:         "list",
	Short:       "Show the latest stored rate of every pair",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{needsDatabase: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rates, err := database.NewRateStore(database.Pool()).Latest(context.Background())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FROM\tTO\tRATE\tSOURCE\tEFFECTIVE")
		for _, r := range rates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.FromCurrency, r.ToCurrency, r.Rate, r.Source, r.EffectiveAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Create the database tables",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{needsDatabase: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(context.Background(), database.Pool()); err != nil {
			return err
		}
		logger.Info().Msg("Schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd, migrateCmd)
	ratesCmd.AddCommand(ratesSetCmd, ratesListCmd)
	ratesSetCmd.Flags().StringVar(&rateSource, "source", "manual", "Where the rate came from")
}
