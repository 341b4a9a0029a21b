package main

import (
	"context"
	"fmt"
	"os"

	"plscrape/cmd/plscrape/commands"
	"plscrape/lib/telemetry"
)

func main() {
	ctx := context.Background()
	tel, err := telemetry.SetupFromEnv(ctx, "plscrape")
	if err != nil {
		fmt.Fprintln(os.Stderr, "telemetry setup failed:", err)
	} else {
		defer tel.Shutdown(ctx)
	}
	commands.ExecuteContext(ctx)
}
