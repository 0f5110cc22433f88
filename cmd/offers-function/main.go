// Command offers-function is the discount function entrypoint: the host
// runtime executes it once per cart evaluation with the run input JSON on
// stdin and reads the result JSON from stdout.
//
// The binary never fails for bad input. Malformed payloads are logged to
// stderr and priced as "no discount" so checkout keeps working.
package main

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/xenking/shopify-offers-function/internal/function"
)

func main() {
	lg, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		lg.Warn("read input", zap.Error(err))
	}

	in, err := function.DecodeInput(data)
	if err != nil {
		lg.Warn("invalid run input, emitting fallback result", zap.Error(err))
	}

	out := function.Run(in)
	if _, err := os.Stdout.Write(append(out.Bytes(), '\n')); err != nil {
		lg.Error("write result", zap.Error(err))
		os.Exit(1)
	}
}
