// fintrack-export dumps the persisted collections as CSV without going
// through the server, for backups and offline analysis.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

func main() {
	collection := flag.String("collection", "transactions", "collection to export: transactions or budgets")
	output := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	adapter := cli.InitAdapter(logger, cfg)
	defer adapter.Close()

	st := store.New(adapter, logger)
	if err := st.Load(context.Background()); err != nil {
		logger.Error("Failed to load collections", applog.FieldError, err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Error("Failed to create output file", applog.FieldError, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch *collection {
	case "transactions":
		err = export.WriteTransactionsCSV(w, st.Transactions())
	case "budgets":
		err = export.WriteBudgetsCSV(w, st.Budgets())
	default:
		fmt.Fprintf(os.Stderr, "unknown collection %q\n", *collection)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Export failed",
			applog.FieldOperation, applog.OpExport,
			applog.FieldError, err)
		os.Exit(1)
	}
}
