package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tourdesk/quote-service/internal/catalog"
)

var (
	catalogFilters catalog.Filters
	catalogOutput  string
	catalogFile    string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the supplier catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list [service-type]",
	Short: "List normalized catalog items of one service type, or of all",
	Long: `List the items of one service type, or of every configured type when none is
given, from the configured source (catalog API, supplier workbook or a directory
of CSV exports). Records that cannot be normalized are skipped and logged.

Service types: ` + strings.Join(serviceTypeNames(), ", "),
	Example: `  quote-service catalog list --city istanbul --active-only
  quote-service catalog list hotel --city istanbul
  quote-service catalog list entrance-fee --q topkapi --output json
  quote-service catalog list guide --workbook ./suppliers.xlsx --active-only
  quote-service catalog list restaurant --workbook ./exports/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogList,
}

var catalogPrecedenceCmd = &cobra.Command{
	Use:   "precedence",
	Short: "Show which supplier price field is used per service type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writePrecedence(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogPrecedenceCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogFile, "workbook", "", "Read the catalog from this workbook or CSV directory instead of the configured sources")
	catalogListCmd.Flags().StringVar(&catalogFilters.Query, "q", "", "Diacritic-insensitive name search")
	catalogListCmd.Flags().StringVar(&catalogFilters.City, "city", "", "Filter by city")
	catalogListCmd.Flags().StringVar(&catalogFilters.Currency, "currency", "", "Filter by currency code")
	catalogListCmd.Flags().BoolVar(&catalogFilters.ActiveOnly, "active-only", false, "Only active items")
	catalogListCmd.Flags().StringVar(&catalogOutput, "output", "table", "Output format: table or json")
}

func serviceTypeNames() []string {
	names := make([]string, len(catalog.ServiceTypes))
	for i, st := range catalog.ServiceTypes {
		names[i] = string(st)
	}
	return names
}

// newCatalogAdapter builds the adapter from --workbook or the loaded config
func newCatalogAdapter(workbook string) (*catalog.Adapter, error) {
	if workbook != "" {
		return catalog.NewAdapter(catalog.BuildRegistry(fileRegistryOptions(workbook))), nil
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config loaded and no --workbook given")
	}
	opts, err := cfg.Catalog.RegistryOptions()
	if err != nil {
		return nil, err
	}
	reg := catalog.BuildRegistry(opts)
	if len(reg.List()) == 0 {
		return nil, fmt.Errorf("no catalog source configured (set CATALOG_BASE_URL, catalog.workbook_path, catalog.csv_dir or --workbook)")
	}
	return catalog.NewAdapter(reg), nil
}

// fileRegistryOptions serves every type from path: a CSV directory or a workbook.
func fileRegistryOptions(path string) catalog.RegistryOptions {
	if catalog.IsCSVDir(path) {
		return catalog.RegistryOptions{CSVDir: path}
	}
	return catalog.RegistryOptions{WorkbookPath: path}
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	adapter, err := newCatalogAdapter(catalogFile)
	if err != nil {
		return err
	}
	items, err := listCatalogItems(context.Background(), adapter, args, catalogFilters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catalogOutput == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	return writeCatalogTable(out, items)
}

// listCatalogItems lists one service type, or every configured type when
// args is empty.
func listCatalogItems(ctx context.Context, adapter *catalog.Adapter, args []string, filters catalog.Filters) ([]catalog.CatalogItem, error) {
	if len(args) == 0 {
		return adapter.ListAll(ctx, filters)
	}
	st, err := catalog.ParseServiceType(args[0])
	if err != nil {
		return nil, err
	}
	return adapter.ListCatalog(ctx, st, filters)
}

func writeCatalogTable(out io.Writer, items []catalog.CatalogItem) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tID\tNAME\tCITY\tPRICE\tCURRENCY\tFIELD\tACTIVE")
	for _, item := range items {
		price := item.UnitPrice.String()
		field := item.PriceField
		if item.PriceTBD() {
			price, field = "TBD", "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			item.ServiceType, item.ID, item.Name, item.City, price, item.Currency, field, item.IsActive)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d item(s)\n", len(items))
	return nil
}

func writePrecedence(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE TYPE\tPRICE FIELDS (first present wins)")
	for _, st := range catalog.ServiceTypes {
		fmt.Fprintf(w, "%s\t%s\n", st, strings.Join(catalog.PricePrecedence(st), " > "))
	}
	return w.Flush()
}
