package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"inventory-manager/feature/inventory"
	"inventory-manager/feature/inventory/matcher"
)

const (
	queryPrompt    = "\nPlease enter manufacturer and item type (or 'q' to quit): "
	closingMessage = "Thank you for using the Inventory System!"
	quitSentinel   = "q"
)

// promptLoop reads queries from in until the quit sentinel or end of input
// and prints each result to out.
func promptLoop(ctx context.Context, svc *inventory.Service, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, queryPrompt)
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, quitSentinel) {
			break
		}
		if err := printQuery(ctx, svc, text, out); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintln(out, closingMessage)
	return nil
}

func printQuery(ctx context.Context, svc *inventory.Service, text string, out io.Writer) error {
	res, err := svc.Query(ctx, text)
	if matcher.IsNoSuchItem(err) {
		fmt.Fprintln(out, matcher.NoSuchItemMessage)
		return nil
	}
	if err != nil {
		return err
	}
	for _, line := range res.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
