package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/BrennanB/TBAscripts/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	preparedBinaryResultParam = "disable_prepared_binary_result"
	maxTracedQueryLength      = 512
	resultDBPingTimeout       = 10 * time.Second
)

var traceQuerySpaces = regexp.MustCompile(`\s+`)

func openResultDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", withPreparedBinaryResult(cfg.ResultDBURL, cfg.ResultDBDisablePreparedBinaryResult),
		otelsql.WithDBName(dbNameFromURL(cfg.ResultDBURL)),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open result db: %w", err)
	}
	// Rows arrive from a single writer; a small pool is plenty.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), resultDBPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping result db: %w", err)
	}

	return db, nil
}

// withPreparedBinaryResult adds the pgbouncer-friendly flag to URL-style
// DSNs unless the caller already set it.
func withPreparedBinaryResult(raw string, enabled bool) string {
	if !enabled {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has(preparedBinaryResultParam) {
		return raw
	}
	query.Set(preparedBinaryResultParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL understands both postgres:// URLs and key=value DSNs.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}
	for _, token := range strings.Fields(raw) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"'`); name != "" {
			return name
		}
	}
	return ""
}

func formatQueryForTrace(query string) string {
	query = traceQuerySpaces.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) > maxTracedQueryLength {
		return query[:maxTracedQueryLength] + "..."
	}
	return query
}
