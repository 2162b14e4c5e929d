// Command numthm is a one-shot filter for host build integration: it reads a
// book JSON document on stdin, numbers its environments and resolves
// cross-references, and writes the transformed book JSON to stdout.
// Configuration comes from the environment (PREFIX_NUMBERS, CUSTOM_ENVS).
package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/dgallion1/numthm/internal/book"
	"github.com/dgallion1/numthm/internal/config"
	"github.com/dgallion1/numthm/internal/transform"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	custom, err := cfg.CustomEnvs()
	if err != nil {
		log.Error("invalid CUSTOM_ENVS", "error", err)
		os.Exit(1)
	}

	var b book.Book
	if err := json.NewDecoder(os.Stdin).Decode(&b); err != nil {
		log.Error("decode book json", "error", err)
		os.Exit(1)
	}

	res, err := transform.Run(&b, transform.Options{
		Prefix: cfg.PrefixNumbers,
		Custom: custom,
	})
	if err != nil {
		// Fatal: nothing is written so the caller never sees partial output.
		log.Error("transform failed", "error", err)
		os.Exit(1)
	}

	for _, warn := range res.Warnings {
		log.Warn(warn.Message, "path", warn.Path)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(&b); err != nil {
		log.Error("encode book json", "error", err)
		os.Exit(1)
	}
}
