package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/jobdesk/jobdesk-be/internal/cli"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "jobdesk server address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.NewApp(*addr).Run(ctx)
}
