package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quote-desk/catalog"
	"quote-desk/config"
	"quote-desk/domain"
	"quote-desk/repository"
	"quote-desk/service"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [product]",
	Short: "List products, or show the categories and tiers of one product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return printProducts(cmd.OutOrStdout(), cat)
		}
		p, err := cat.Product(args[0])
		if err != nil {
			return err
		}
		return printProduct(cmd.OutOrStdout(), p)
	},
}

func printProducts(w io.Writer, cat *catalog.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tFAMILY")
	for _, p := range cat.Products() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Key, p.Name, p.Family)
	}
	return tw.Flush()
}

func printProduct(w io.Writer, p *domain.ProductSchema) error {
	fmt.Fprintf(w, "%s (%s)\n", p.Name, p.Key)
	for _, c := range p.Categories {
		label := c.Label
		if c.Requires != "" {
			label += " [requires " + c.Requires + "]"
		}
		fmt.Fprintf(w, "\n%s:\n", label)
		switch {
		case c.Derived != nil:
			fmt.Fprintf(w, "  derived from %s\n", c.Requires)
		case len(c.TiersByParent) > 0:
			for _, parent := range slices.Sorted(maps.Keys(c.TiersByParent)) {
				fmt.Fprintf(w, "  when %s:\n", parent)
				printTiers(w, p.Currency, c.TiersByParent[parent], "    ")
			}
		default:
			printTiers(w, p.Currency, c.Tiers, "  ")
		}
	}
	if len(p.AddOns) > 0 {
		fmt.Fprintln(w, "\nAdd-ons:")
		for _, a := range p.AddOns {
			fmt.Fprintf(w, "  %-24s %s\n", a.ID, p.Currency.Format(a.Price))
		}
	}
	return nil
}

func printTiers(w io.Writer, cur domain.Currency, tiers []domain.PlanTier, indent string) {
	for _, t := range tiers {
		fmt.Fprintf(w, "%s%-28s %s\n", indent, t.ID, cur.Format(t.Price))
	}
}

var (
	priceProduct string
	priceFields  []string
	priceTiers   []string
	priceAddOns  []string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a quote from the command line",
	Example: `  quotedesk price --product private-motor \
    --field vehicleValue=1,000,000 --tier coverType=comprehensive --addon courtesy-car`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := priceRequest(priceProduct, priceFields, priceTiers, priceAddOns)
		if err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		svc := service.NewQuoteService(cat,
			repository.NewQuoteRepositoryMemory(nil),
			repository.NewMemoryCache(),
			config.Duration(cfg.Storage.QuoteCacheTTL),
			logger,
		)
		res, err := svc.Price(cmd.Context(), req)
		if err != nil {
			return err
		}
		printQuote(cmd.OutOrStdout(), res)
		return nil
	},
}

// priceRequest builds a quote request from name=value flag pairs.
func priceRequest(product string, fields, tiers, addOns []string) (service.QuoteRequest, error) {
	req := service.QuoteRequest{
		Product:   product,
		Applicant: make(map[string]string, len(fields)),
		AddOns:    addOns,
	}
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return req, fmt.Errorf("--field %q: want name=value", f)
		}
		req.Applicant[k] = v
	}
	for _, t := range tiers {
		k, v, ok := strings.Cut(t, "=")
		if !ok || k == "" || v == "" {
			return req, fmt.Errorf("--tier %q: want category=tier", t)
		}
		req.Selections = append(req.Selections, service.TierChoice{Category: k, Tier: v})
	}
	return req, nil
}

func printQuote(w io.Writer, res service.QuoteResult) {
	p := res.Presentation
	fmt.Fprintln(w, p.CoverName)
	for _, m := range res.Messages {
		fmt.Fprintf(w, "%s %s: %s\n", m.Level, m.Code, m.Message)
	}
	if p.Prompt != "" {
		fmt.Fprintln(w, p.Prompt)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, l := range p.Lines {
		fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, l.Amount)
	}
	fmt.Fprintf(tw, "Total\t%s\t\n", p.Total)
	_ = tw.Flush()
	if i := p.Installments; i != nil {
		fmt.Fprintf(w, "or %s upfront and %d monthly payments of %s\n", i.Upfront, i.Months, i.Monthly)
	}
}
