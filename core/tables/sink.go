package tables

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Sink stores one named report.
type Sink interface {
	Name() string
	Write(ctx context.Context, name string, lines []string) error
}

// MultiSink writes every report to all of its sinks concurrently.
type MultiSink []Sink

// Name implements Sink.
func (m MultiSink) Name() string {
	names := make([]string, 0, len(m))
	for _, s := range m {
		names = append(names, s.Name())
	}
	return strings.Join(names, ",")
}

// Write implements Sink. The first failing sink's error is returned.
func (m MultiSink) Write(ctx context.Context, name string, lines []string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range m {
		g.Go(func() error {
			return s.Write(gctx, name, lines)
		})
	}
	return g.Wait()
}
