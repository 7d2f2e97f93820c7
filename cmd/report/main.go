package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"nordpulse/internal/analytics"
	"nordpulse/internal/config"
	"nordpulse/internal/dataset"
	"nordpulse/internal/exporter"
	"nordpulse/internal/infrastructure"
	"nordpulse/pkg/contracts/domain"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// listFlag is a comma separated flag that remembers whether it was given.
// Passing an empty string selects nothing.
type listFlag struct {
	values []string
	set    bool
}

func (f *listFlag) String() string {
	return strings.Join(f.values, ",")
}

func (f *listFlag) Set(s string) error {
	f.set = true
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			f.values = append(f.values, v)
		}
	}
	return nil
}

func (f *listFlag) selection() domain.Selection {
	if !f.set {
		return domain.All()
	}
	return domain.Only(f.values...)
}

type options struct {
	dataPath        string
	sheet           string
	products        listFlag
	complaints      listFlag
	start           string
	end             string
	format          string
	exportPath      string
	totalComplaints int
	verbose         bool
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.dataPath, "data", cfg.DatasetPath(), "dataset file (.csv or .xlsx)")
	fs.StringVar(&opts.sheet, "sheet", cfg.Dataset.Sheet, "worksheet name for .xlsx datasets (default first sheet)")
	fs.Var(&opts.products, "product-category", "comma separated product categories; empty selects none (default all)")
	fs.Var(&opts.complaints, "complaint-category", "comma separated complaint labels (default all)")
	fs.StringVar(&opts.start, "start", "", "first day to include, YYYY-MM-DD (needs -end)")
	fs.StringVar(&opts.end, "end", "", "last day to include, YYYY-MM-DD (needs -start)")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.StringVar(&opts.exportPath, "export", "", "write the product summary to a .csv or .xlsx file; relative paths go to the exports directory")
	fs.IntVar(&opts.totalComplaints, "total-complaints", cfg.Dataset.TotalSystemComplaints, "system-wide complaint total for the complaint share")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.format = strings.ToLower(opts.format)
	if opts.format != "text" && opts.format != "json" {
		return nil, fmt.Errorf("unsupported -format %q (want text or json)", opts.format)
	}
	if opts.dataPath == "" {
		return nil, errors.New("-data is required")
	}
	return opts, nil
}

func (o *options) criteria() (domain.FilterCriteria, error) {
	start, err := parseDay("start", o.start)
	if err != nil {
		return domain.FilterCriteria{}, err
	}
	end, err := parseDay("end", o.end)
	if err != nil {
		return domain.FilterCriteria{}, err
	}
	return domain.FilterCriteria{
		ProductCategories:   o.products.selection(),
		ComplaintCategories: o.complaints.selection(),
		DateRange:           domain.DateRange{Start: start, End: end},
	}, nil
}

func parseDay(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s %q: want YYYY-MM-DD", name, value)
	}
	return &t, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	criteria, err := opts.criteria()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	logCfg := cfg.Logging
	logCfg.Level = "warn"
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logger := infrastructure.WithComponent(infrastructure.NewLoggerWithWriter(stderr, logCfg), "report")
	ctx = infrastructure.EnsureTraceID(ctx)

	source := dataset.NewFileSource(opts.dataPath)
	source.Sheet = opts.sheet

	ds, err := dataset.NewLoader(logger).Load(ctx, source)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to load dataset")
		fmt.Fprintf(stderr, "cannot load dataset: %v\n", err)
		return exitError
	}

	pipeline := analytics.NewPipeline(logger, analytics.PipelineConfig{TotalSystemComplaints: opts.totalComplaints})
	dashboard, err := pipeline.Run(ctx, ds, criteria)
	if err != nil {
		var empty *analytics.EmptyResultError
		if errors.As(err, &empty) {
			fmt.Fprintf(stdout, "No data for the selected filters (%d records in %s).\n", empty.DatasetSize, ds.Source)
			return exitOK
		}
		fmt.Fprintf(stderr, "report failed: %v\n", err)
		return exitError
	}

	if opts.exportPath != "" {
		written, err := exporter.NewProductExporter(cfg.ResolvedPaths(), logger).ExportFile(opts.exportPath, dashboard.ProductSummary)
		if err != nil {
			fmt.Fprintf(stderr, "export failed: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stderr, "Product summary written to %s\n", written)
	}

	if opts.format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dashboard); err != nil {
			fmt.Fprintf(stderr, "write report: %v\n", err)
			return exitError
		}
		return exitOK
	}

	if _, err := io.WriteString(stdout, renderText(dashboard)); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return exitError
	}
	return exitOK
}

var headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

func renderText(d *domain.Dashboard) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Sales & Returns Dashboard"))
	fmt.Fprintf(&b, "\nSource: %s\nRecords: %d of %d\n", d.Source, d.FilteredSize, d.DatasetSize)

	k := d.KPIs
	section(&b, "Key figures", []string{"Metric", "Value"}, [][]string{
		{"Transactions", strconv.Itoa(k.TransactionCount)},
		{"Revenue", money(k.TotalRevenue)},
		{"Returns", strconv.Itoa(k.ReturnCount)},
		{"Return rate", percent(k.ReturnRate)},
		{"Linked complaints", fmt.Sprintf("%d of %d (%s)", k.LinkedComplaints, k.TotalSystemComplaints, percent(k.ComplaintShare))},
	})

	weekly := make([][]string, 0, len(d.WeeklySeries))
	for _, p := range d.WeeklySeries {
		weekly = append(weekly, []string{p.WeekStart.Format(domain.DateLayout), money(p.Revenue), strconv.Itoa(p.Returns)})
	}
	section(&b, "Weekly revenue and returns", []string{"Week of", "Revenue", "Returns"}, weekly)

	categories := make([][]string, 0, len(d.CategoryReturnRates))
	for _, c := range d.CategoryReturnRates {
		categories = append(categories, []string{c.Category, strconv.Itoa(c.Transactions), strconv.Itoa(c.Returns), percent(c.ReturnRate)})
	}
	section(&b, "Return rate by category", []string{"Category", "Transactions", "Returns", "Rate"}, categories)

	labels := make([][]string, 0, len(d.ComplaintFrequency))
	for _, l := range d.ComplaintFrequency {
		labels = append(labels, []string{l.Label, strconv.Itoa(l.Count)})
	}
	section(&b, "Complaint frequency", []string{"Complaint", "Records"}, labels)

	products := make([][]string, 0, len(d.ProductSummary))
	for _, p := range d.ProductSummary {
		products = append(products, []string{p.ProductName, strconv.Itoa(p.Sales), strconv.Itoa(p.Returns), strconv.Itoa(p.Complaints)})
	}
	section(&b, "Products", exporter.ProductHeaders, products)

	return b.String()
}

func section(b *strings.Builder, title string, headers []string, rows [][]string) {
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString("(none)\n")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.String())
	b.WriteString("\n")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
