package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"pumpquote/internal"
	"pumpquote/internal/config"
	"pumpquote/internal/connectors"
	gmailconnector "pumpquote/internal/connectors/gmail"
	imapconnector "pumpquote/internal/connectors/imap"
	"pumpquote/internal/listener"
	"pumpquote/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "price-list file (.xlsx or .html)")
		inType := fs.String("type", "", "xlsx|html (default: by extension)")
		sheet := fs.String("sheet", "", "worksheet name (default: first)")
		headerRow := fs.Int("headerRow", 0, "header row override, 1-based (default: auto-detect)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("--file is required"))
		}

		catalog, err := pipeline.LoadCatalog(*file, pipeline.LoadOptions{
			InputType: *inType,
			Sheet:     *sheet,
			HeaderRow: *headerRow,
			ScanLimit: cfg.HeaderScanLimit,
		})
		must(err)

		fmt.Printf("sheet=%s headerRow=%d products=%d\n\n", catalog.Sheet, catalog.HeaderRow+1, len(catalog.Rows))
		fmt.Print(pipeline.DescribeColumns(catalog.Columns))
		fmt.Println()
		for _, label := range catalog.Labels() {
			fmt.Println(label)
		}
	case "quote":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "price-list file (.xlsx or .html)")
		inType := fs.String("type", "", "xlsx|html (default: by extension)")
		sheet := fs.String("sheet", "", "worksheet name (default: first)")
		headerRow := fs.Int("headerRow", 0, "header row override, 1-based (default: auto-detect)")
		product := fs.String("product", "", "ERP code or model name")
		customer := fs.String("customer", "", "individual|plumber|engineer")
		payment := fs.String("payment", "", "cash|program")
		billing := fs.String("billing", "", "professional|end-customer")
		payout := fs.String("payout", "", "invoice|hand")
		out := fs.String("out", "", "optional xlsx export path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" || strings.TrimSpace(*product) == "" || strings.TrimSpace(*customer) == "" {
			must(fmt.Errorf("--file, --product and --customer are required"))
		}

		input, err := parseScenario(*customer, *payment, *billing, *payout)
		must(err)

		catalog, err := pipeline.LoadCatalog(*file, pipeline.LoadOptions{
			InputType: *inType,
			Sheet:     *sheet,
			HeaderRow: *headerRow,
			ScanLimit: cfg.HeaderScanLimit,
		})
		must(err)

		row, err := pipeline.SelectRow(catalog.Rows, *product, cfg.SelectOKThreshold, cfg.SelectGapThreshold)
		must(err)

		result := pipeline.Quote(row, input)

		fmt.Printf("product: %s\n", row.Label())
		encoded, err := json.MarshalIndent(result, "", "  ")
		must(err)
		fmt.Println(string(encoded))

		if strings.TrimSpace(*out) != "" {
			exportRow := pipeline.BuildExportRow(row, input, result)
			must(pipeline.ExportQuotesToXLSX([]internal.QuoteExportRow{exportRow}, *out))
			fmt.Printf("exported quote to %s\n", *out)
		}
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "imap|gmail")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 20, "max messages")
		_ = fs.Parse(os.Args[2:])

		log := newLogger()
		defer log.Sync()

		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(conn, cfg.PriceListDir, log)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, len(result.Stored))
		for _, stored := range result.Stored {
			fmt.Printf("  %s (%s)\n", stored.Path, stored.Subject)
		}
	case "mail:watch":
		log := newLogger()
		defer log.Sync()
		svc := listener.NewService(cfg, log)
		must(svc.Run(context.Background()))
	default:
		usage()
		os.Exit(1)
	}
}

func parseScenario(customer, payment, billing, payout string) (internal.ScenarioInput, error) {
	ct, err := internal.ParseCustomerType(customer)
	if err != nil {
		return internal.ScenarioInput{}, err
	}
	pm, err := internal.ParsePaymentMethod(payment)
	if err != nil {
		return internal.ScenarioInput{}, err
	}
	br, err := internal.ParseBillingRoute(billing)
	if err != nil {
		return internal.ScenarioInput{}, err
	}
	po, err := internal.ParsePayoutMode(payout)
	if err != nil {
		return internal.ScenarioInput{}, err
	}
	return internal.ScenarioInput{Customer: ct, Payment: pm, Billing: br, Payout: po}, nil
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func usage() {
	fmt.Println("usage: pumpquote <command>")
	fmt.Println("commands:")
	fmt.Println("  load --file=pricelist.xlsx [--sheet=...] [--headerRow=N] [--type=xlsx|html]")
	fmt.Println("  quote --file=pricelist.xlsx --product=<erp-or-model> --customer=individual|plumber|engineer")
	fmt.Println("        [--payment=cash|program] [--billing=professional|end-customer] [--payout=invoice|hand]")
	fmt.Println("        [--out=result.xlsx]")
	fmt.Println("  mail:fetch --provider=imap|gmail [--label=INBOX] [--max=20]")
	fmt.Println("  mail:watch")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
