package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/matzehuels/diagramkit/internal/cli"
	kerrors "github.com/matzehuels/diagramkit/pkg/errors"
)

func main() {
	// DIAGRAMKIT_* may also come from the environment, so a missing .env is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps err to a process status: 0 ok, 1 failure, 2 bad input,
// 130 interrupted.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	}
	fmt.Fprintln(os.Stderr, err)
	if strings.HasPrefix(string(kerrors.GetCode(err)), "INVALID_") {
		return 2
	}
	return 1
}
