// Package loader fetches the raw comparable-sales table text. The pricing
// core never does I/O itself; it consumes whatever text the loader hands it.
package loader

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const fetchTimeout = 10 * time.Second

type Loader struct {
	httpClient *resty.Client
}

func New() *Loader {
	return &Loader{
		httpClient: resty.New().SetTimeout(fetchTimeout),
	}
}

// Load reads the table from source, which is either an http(s) URL or a local
// file path. On any failure it logs a warning and returns empty text, never
// an error, so downstream consumers degrade to their documented defaults.
func (l *Loader) Load(ctx context.Context, source string) string {
	if source == "" {
		return ""
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		res, err := l.httpClient.R().SetContext(ctx).Get(source)
		if err != nil {
			log.Warn().Err(err).Str("source", source).Msg("failed to fetch sales table")
			return ""
		}
		if res.IsError() {
			log.Warn().Int("status", res.StatusCode()).Str("source", source).Msg("sales table fetch failed")
			return ""
		}
		return res.String()
	}

	data, err := os.ReadFile(source)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("failed to read sales table")
		return ""
	}
	return string(data)
}
