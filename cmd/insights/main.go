/*
main.go - insights CLI entry point

PURPOSE:
  Command-line reporting over the e-commerce dataset. Each subcommand
  builds the pipeline from the config file, computes one report, and
  prints it as a markdown table.

SUBCOMMANDS:
  summary      Seven-metric business summary
  categories   Revenue by product category
  states       Revenue by customer state
  status       Revenue by order status
  reviews      Review score distribution
  delivery     Avg review score per delivery bucket

EXAMPLES:
  insights summary -config=./insights.yaml
  insights categories -config=./insights.yaml -top=5
  insights summary -demo

SEE ALSO:
  - commands.go: Subcommand implementations
  - renderer/: Report formatting
*/
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&summaryCmd{}, "reports")
	subcommands.Register(&categoriesCmd{}, "reports")
	subcommands.Register(&statesCmd{}, "reports")
	subcommands.Register(&statusCmd{}, "reports")
	subcommands.Register(&reviewsCmd{}, "reports")
	subcommands.Register(&deliveryCmd{}, "reports")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
