package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/handlers"
	"github.com/tourdesk/quote-service/internal/itinerary"
	"github.com/tourdesk/quote-service/internal/money"
)

var (
	quoteOutput   string
	quoteWorkbook string
	quoteSave     bool
)

// QuotationFile is the input of `quote price`: the trip plus the services
// to select, in the same shape as the HTTP API requests.
type QuotationFile struct {
	handlers.CreateQuotationRequest
	Services []handlers.AddServiceRequest `json:"services"`
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price and inspect quotations",
}

var quotePriceCmd = &cobra.Command{
	Use:   "price <file.json>",
	Short: "Price a quotation file and print the day-by-day itinerary",
	Long: `Price a quotation file against the catalog and the configured exchange rates.
Each service is looked up by type and id, priced with the configured markup
and bucketed into its travel day. Totals are in the trip base currency.`,
	Example: `  quote-service quote price ./istanbul.json --workbook ./suppliers.xlsx
  quote-service quote price ./istanbul.json --output json
  quote-service quote price ./istanbul.json --save`,
	Args: cobra.ExactArgs(1),
	RunE: runQuotePrice,
}

var quoteShowCmd = &cobra.Command{
	Use:         "show <id>",
	Short:       "Print a saved quotation",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{needsDatabase: "true"},
	RunE:        runQuoteShow,
}

var quoteListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List saved quotations",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{needsDatabase: "true"},
	RunE:        runQuoteList,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.AddCommand(quotePriceCmd, quoteShowCmd, quoteListCmd)

	quoteCmd.PersistentFlags().StringVar(&quoteOutput, "output", "table", "Output format: table or json")
	quotePriceCmd.Flags().StringVar(&quoteWorkbook, "workbook", "", "Read the catalog from this workbook or CSV directory instead of the configured sources")
	quotePriceCmd.Flags().BoolVar(&quoteSave, "save", false, "Store the priced quotation in the database")
}

func loadQuotationFile(path string) (QuotationFile, error) {
	var qf QuotationFile
	data, err := os.ReadFile(path)
	if err != nil {
		return qf, fmt.Errorf("read quotation file: %w", err)
	}
	if err := json.Unmarshal(data, &qf); err != nil {
		return qf, fmt.Errorf("parse quotation file %s: %w", path, err)
	}
	return qf, nil
}

// newPricer builds a pricer from the loaded config; without config it uses
// the engine defaults and no rate source.
func newPricer(ctx context.Context, stored fx.RateSource) (*itinerary.Pricer, func() error, error) {
	if cfg == nil {
		p, err := itinerary.NewPricer(nil, stored)
		return p, func() error { return nil }, err
	}
	rates, closeFn, err := cfg.FX.RateSource(ctx, stored)
	if err != nil {
		return nil, nil, err
	}
	pricingCfg, err := cfg.Pricing.ItineraryConfig()
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	p, err := itinerary.NewPricer(pricingCfg, rates)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return p, closeFn, nil
}

// priceQuotation builds a trip from qf, resolving items through adapter.
// The first failing service aborts with its index.
func priceQuotation(ctx context.Context, p *itinerary.Pricer, adapter *catalog.Adapter, qf QuotationFile) (*itinerary.Trip, error) {
	start, err := itinerary.ParseDate(qf.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := itinerary.ParseDate(qf.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}
	tc := itinerary.TripContext{
		BaseCurrency: qf.BaseCurrency,
		StartDate:    start,
		EndDate:      end,
		Adults:       qf.Adults,
		Children:     qf.Children,
	}
	if qf.MarkupFactor != nil {
		tc.MarkupFactor = decimal.NewNullDecimal(*qf.MarkupFactor)
	}
	trip, err := p.NewTrip(qf.Name, tc)
	if err != nil {
		return nil, err
	}

	for i, svc := range qf.Services {
		st, err := catalog.ParseServiceType(svc.ServiceType)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", i+1, err)
		}
		item, err := adapter.GetItem(ctx, st, svc.ItemID)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", i+1, err)
		}

		opts := itinerary.AddServiceOptions{Quantity: svc.Quantity, ExchangeRate: svc.ExchangeRate}
		if svc.ServiceDate != "" {
			d, err := itinerary.ParseDate(svc.ServiceDate)
			if err != nil {
				return nil, fmt.Errorf("service %d: serviceDate: %w", i+1, err)
			}
			opts.ServiceDate = &d
		}
		if svc.SellingPrice != nil {
			currency := svc.SellingCurrency
			if currency == "" {
				currency = item.Currency
			}
			price := money.New(*svc.SellingPrice, currency)
			opts.SellingPrice = &price
		}
		if _, err := p.AddService(ctx, trip, item, opts); err != nil {
			return nil, fmt.Errorf("service %d (%s %s): %w", i+1, st, svc.ItemID, err)
		}
	}
	return trip, nil
}

func runQuotePrice(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	qf, err := loadQuotationFile(args[0])
	if err != nil {
		return err
	}
	adapter, err := newCatalogAdapter(quoteWorkbook)
	if err != nil {
		return err
	}

	var stored fx.RateSource
	if database.Pool() != nil {
		stored = database.NewRateStore(database.Pool())
	}
	p, closeRates, err := newPricer(ctx, stored)
	if err != nil {
		return err
	}
	defer closeRates()

	trip, err := priceQuotation(ctx, p, adapter, qf)
	if err != nil {
		return err
	}

	if quoteSave {
		if err := database.NewQuotationStore(database.Pool()).Save(ctx, trip.Snapshot()); err != nil {
			return err
		}
		logger.Info().Str("id", trip.ID).Int("services", trip.Len()).Msg("Quotation saved")
	}
	return writeQuotation(cmd.OutOrStdout(), handlers.NewQuotationView(trip), quoteOutput)
}

func runQuoteShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	snap, err := database.NewQuotationStore(database.Pool()).Get(ctx, args[0])
	if err != nil {
		return err
	}
	trip, err := itinerary.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("stored quotation %s is invalid: %w", args[0], err)
	}
	return writeQuotation(cmd.OutOrStdout(), handlers.NewQuotationView(trip), quoteOutput)
}

func runQuoteList(cmd *cobra.Command, args []string) error {
	list, err := database.NewQuotationStore(database.Pool()).List(context.Background(), database.QuotationFilterOptions{Limit: 200})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if quoteOutput == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDATES\tBASE\tSERVICES\tUPDATED")
	for _, q := range list {
		fmt.Fprintf(w, "%s\t%s\t%s..%s\t%s\t%d\t%s\n",
			q.ID, q.Name, q.StartDate, q.EndDate, q.BaseCurrency, q.Services, q.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func writeQuotation(out io.Writer, view handlers.QuotationView, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Fprintf(out, "%s  %s\n", view.ID, view.Name)
	fmt.Fprintf(out, "%s .. %s  (%d adult(s), %d child(ren))  base %s  markup x%s\n\n",
		view.StartDate, view.EndDate, view.Adults, view.Children, view.BaseCurrency, view.MarkupFactor)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DAY\tDATE\tTYPE\tSERVICE\tQTY\tUNIT COST\tRATE\tUNIT PRICE\tTOTAL\t")
	for _, day := range view.Days {
		if len(day.Selections) == 0 {
			fmt.Fprintf(w, "%d\t%s\t%s\t-\t\t\t\t\t%s\t\n", day.DayNumber, day.Date, day.DayType, day.Total.StringFixed(2))
			continue
		}
		for i, s := range day.Selections {
			dayCol, dateCol, typeCol := "", "", ""
			if i == 0 {
				dayCol, dateCol, typeCol = fmt.Sprint(day.DayNumber), day.Date, string(day.DayType)
			}
			name := s.ItemName
			if s.PriceOverridden {
				name += " *"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s %s\t%s\t%s %s\t%s\t\n",
				dayCol, dateCol, typeCol, name, s.Quantity,
				s.CostAmount.String(), s.CostCurrency, s.ExchangeRate.String(),
				s.SellingPrice.StringFixed(2), s.SellingCurrency, s.LineTotal.StringFixed(2))
		}
		if len(day.Selections) > 1 {
			fmt.Fprintf(w, "\t\t\t\t\t\t\t\t%s\t\n", day.Total.StringFixed(2))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal  %s %s\n", view.Total.StringFixed(2), view.BaseCurrency)
	fmt.Fprintf(out, "Cost   %s %s\n", view.Cost.StringFixed(2), view.BaseCurrency)
	fmt.Fprintf(out, "Margin %s %s (%s%%)\n", view.Margin.StringFixed(2), view.BaseCurrency, view.MarginPercent.StringFixed(2))
	return nil
}
