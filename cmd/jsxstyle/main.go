// Package main provides the jsxstyle CLI for compiling styled-jsx external
// styles ahead of time.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/yacobolo/jsxstyle"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Issues have already been reported
		if !errors.Is(err, errIssuesFound) {
			useColors := jsxstyle.NewReporter(os.Stderr, buildReportConfig()).UseColors()
			fmt.Fprintln(os.Stderr, jsxstyle.RenderStyle(jsxstyle.StyleRed, "Error: "+err.Error(), useColors))
		}
		stop()
		os.Exit(1)
	}
}
