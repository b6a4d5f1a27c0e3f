// Package api serves the aggregated plate-series table over HTTP.
//
// A gin router exposes the table as a JSON array on /series with optional
// anio/mes/fin query filters, as a subscribable iCalendar feed on
// /series.ics, plus /health and /metrics endpoints. Responses come from a
// TTL cache refreshed through the scrape orchestrator, either lazily on
// expiry or ahead of time by a cron schedule; when a refresh yields no
// records at all, a configured fallback dataset is served instead.
package api
