package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"seranking/cmd/seranking-cli/commands"
	"seranking/lib/telemetry"
)

func main() {
	ctx := context.Background()

	telemetry.InitSlog(true)
	_, err := telemetry.SetupFromEnv(ctx, "seranking-cli")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	commands.ExecuteContext(ctx)
}
