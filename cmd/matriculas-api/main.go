package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/plateseries/matriculas/internal/api"
	"github.com/plateseries/matriculas/internal/logger"
	"github.com/plateseries/matriculas/internal/scraper"
)

var (
	addr         = flag.String("addr", "", "Listen address (default :$PORT or :8080)")
	cacheTTL     = flag.Duration("cache-ttl", api.DefaultTTL, "How long one scrape stays cached")
	refreshCron  = flag.String("refresh-cron", "", "Cron expression for background refresh, e.g. '@every 6h' (empty disables)")
	fallbackFile = flag.String("fallback-file", "", "Static table served when the scrape yields nothing")
	corsOrigins  = flag.String("cors-origins", "", "Comma-separated allowed CORS origins (empty allows all)")
	sources      = flag.String("sources", "", "Comma-separated source URLs (default $MATRICULAS_SOURCES or built-in)")
)

// listenAddr resolves the listen address from the flag, then PORT, then the
// default port.
func listenAddr() string {
	if *addr != "" {
		return *addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

// splitOrigins turns the comma-separated flag value into an origin list.
func splitOrigins(list string) []string {
	origins := make([]string, 0)
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		origins = append(origins, raw)
	}
	return origins
}

func main() {
	// Local runs read PORT, MATRICULAS_SOURCES and LOG_LEVEL from .env.
	_ = godotenv.Load()
	flag.Parse()

	logger.SetDefault(logger.New(logger.ParseLevel(os.Getenv("LOG_LEVEL")), os.Stdout))
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	sourceList := *sources
	if sourceList == "" {
		sourceList = os.Getenv("MATRICULAS_SOURCES")
	}
	sc := scraper.New(scraper.ParseSources(sourceList)...)

	cfg := api.Config{
		Addr:           listenAddr(),
		CacheTTL:       *cacheTTL,
		RefreshCron:    *refreshCron,
		FallbackFile:   *fallbackFile,
		AllowedOrigins: splitOrigins(*corsOrigins),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := api.New(cfg, sc).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
