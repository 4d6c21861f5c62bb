// Command matchctl builds and inspects match graphs from batch files and
// imports them into the match store.
package main

import (
	"fmt"
	"os"

	"suitemate/backend/pkg/logger"
)

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
