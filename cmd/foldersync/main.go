package main

import (
	"context"
	"log"
	"os"

	"github.com/philipp01105/foldersync/internal/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
