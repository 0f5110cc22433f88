// Package handler serves the local function preview API: it runs the
// discount function over HTTP so merchants can exercise sample carts
// against their offer configuration before deploying.
package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/shopify-offers-function/internal/function"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// MaxBodyBytes caps the accepted run input size. Zero means the
	// default of 1 MiB.
	MaxBodyBytes int64
	// Parallel is the per-line evaluation concurrency. Values <= 1 run
	// sequentially.
	Parallel int
}

const defaultMaxBody = 1 << 20

// Handler implements the preview endpoints.
type Handler struct {
	maxBody  int64
	parallel int
}

// New constructs a Handler.
func New(cfg Config) *Handler {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &Handler{maxBody: maxBody, parallel: cfg.Parallel}
}

// Run handles POST /run. The body is the host's run input JSON; the
// response is the function result. A malformed body still answers 200 with
// the fallback result, since that resilience is part of what is being
// previewed. Oversized bodies and wrong methods are rejected.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxBody+1))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > h.maxBody {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	in, err := function.DecodeInput(body)
	if err != nil {
		zctx.From(r.Context()).Debug("malformed run input", zap.Error(err))
	}

	var res function.Result
	if h.parallel > 1 {
		res = function.RunParallel(r.Context(), in, h.parallel)
	} else {
		res = function.Run(in)
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(res.Bytes()); err != nil {
		zctx.From(r.Context()).Debug("write response", zap.Error(err))
	}
}
