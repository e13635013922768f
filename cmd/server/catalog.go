// cmd/server/catalog.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/javajoker/soundwave/internal/catalog"
	"github.com/javajoker/soundwave/internal/models"
	"github.com/javajoker/soundwave/internal/pricing"
)

func catalogCommand() *cli.Command {
	jsonFlag := &cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"}

	return &cli.Command{
		Name:  "catalog",
		Usage: "browse the product catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products, optionally in one category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: models.CategoryAll},
					jsonFlag,
				},
				Action: func(c *cli.Context) error {
					items := catalog.Default().GetByCategory(c.String("category"))
					return printProducts(c.App.Writer, items, c.Bool("json"))
				},
			},
			{
				Name:      "search",
				Usage:     "search names, descriptions and categories",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{jsonFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("search needs a query", 1)
					}
					items := catalog.Default().Search(c.Args().First())
					return printProducts(c.App.Writer, items, c.Bool("json"))
				},
			},
			{
				Name:  "categories",
				Usage: "list categories with product counts",
				Action: func(c *cli.Context) error {
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tPRODUCTS")
					for _, info := range catalog.Default().Categories() {
						fmt.Fprintf(w, "%s\t%s\t%d\n", info.ID, info.Name, info.ProductCount)
					}
					return w.Flush()
				},
			},
		},
	}
}

func printProducts(out io.Writer, items []models.Product, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range items {
		stock := "in stock"
		if !p.InStock {
			stock = "sold out"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, pricing.Format(p.Price), stock)
	}
	fmt.Fprintf(w, "\n%d products\n", len(items))
	return w.Flush()
}
