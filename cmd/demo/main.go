// Command demo wires the sample store data to the verdict engine: it
// loads workflow definitions from disk, evaluates them for a handful of
// customers and prints pass/fail results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mfeller/verdict"
	"github.com/mfeller/verdict/dsl"
	"github.com/mfeller/verdict/examples"
)

func main() {
	workflowFile := flag.String("workflows", "testdata/workflows.json", "workflow definition file (.json, .yaml)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*workflowFile); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(workflowFile string) error {
	workflows, err := verdict.LoadWorkflowsFile(workflowFile)
	if err != nil {
		return fmt.Errorf("loading workflows: %w", err)
	}

	engine := verdict.NewEngine(dsl.NewEvaluator())
	if err := engine.AddWorkflow(workflows...); err != nil {
		return fmt.Errorf("registering workflows: %w", err)
	}

	businessLogic := &examples.BusinessLogic{}
	discounts := &examples.DiscountService{}

	for _, customer := range sampleCustomers() {
		fmt.Printf("Customer: %s\n", customer.Name)
		fmt.Printf("  Country:               %s\n", customer.Country)
		fmt.Printf("  Loyalty factor:        %d\n", customer.LoyaltyFactor)
		fmt.Printf("  Purchases to date:     %.2f\n", customer.TotalPurchasesToDate)

		tier := businessLogic.DiscountTier(customer.TotalPurchasesToDate)
		pct := discounts.DiscountPercent(tier)
		fmt.Printf("  Discount tier:         %s (%.0f%%)\n", tier, pct)

		facts := verdict.Facts().
			Bind("input1", customer).
			Bind("businessLogic", businessLogic).
			Bind("discountService", discounts)

		for _, name := range engine.WorkflowNames() {
			results, err := engine.Evaluate(context.Background(), name, facts)
			if err != nil {
				return fmt.Errorf("evaluating %s: %w", name, err)
			}
			fmt.Printf("\nWorkflow %s:\n%s\n", name, results)
		}
		fmt.Println()
	}
	return nil
}

func sampleCustomers() []*examples.Customer {
	return []*examples.Customer{
		{
			Name:                 "Abbie Marsh",
			Email:                "abbie@example.com",
			Country:              "US",
			LoyaltyFactor:        5,
			TotalPurchasesToDate: 6500,
			Orders: []examples.Order{
				{Product: examples.Product{Name: "Desk lamp", Category: "Home", Price: 45}, Quantity: 2, UnitPrice: 45},
			},
		},
		{
			Name:                 "Ben Okafor",
			Email:                "ben@example.com",
			Country:              "UK",
			LoyaltyFactor:        3,
			TotalPurchasesToDate: 750,
		},
		{
			Name:                 "Carla Voss",
			Email:                "carla@example.com",
			Country:              "CA",
			LoyaltyFactor:        9,
			TotalPurchasesToDate: 12400,
			Orders: []examples.Order{
				{Product: examples.Product{Name: "Espresso machine", Category: "Kitchen", Price: 620}, Quantity: 1, UnitPrice: 620},
				{Product: examples.Product{Name: "Grinder", Category: "Kitchen", Price: 180}, Quantity: 1, UnitPrice: 180},
			},
		},
	}
}
