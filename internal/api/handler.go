package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateseries/matriculas/internal/calendar"
	"github.com/plateseries/matriculas/internal/filter"
	"github.com/plateseries/matriculas/internal/logger"
	"github.com/plateseries/matriculas/internal/series"
)

// handleSeries serves the aggregated table, refreshing the cache when it
// has expired. Optional anio, mes and fin query parameters narrow the
// response.
func (s *Server) handleSeries(c *gin.Context) {
	f, err := queryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, ok := s.cache.Get()
	if !ok {
		records, err = s.refresh(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "series data unavailable"})
			return
		}
	}

	records = f.Apply(records)
	if records == nil {
		records = []series.Record{}
	}

	c.JSON(http.StatusOK, records)
}

// handleCalendar serves the table as a subscribable iCalendar feed.
func (s *Server) handleCalendar(c *gin.Context) {
	records, ok := s.cache.Get()
	if !ok {
		var err error
		records, err = s.refresh(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "series data unavailable"})
			return
		}
	}

	ics := calendar.GenerateICS(records, calendar.DefaultCalendarName)
	if ics == "" {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="matriculas.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// handleHealth reports liveness and how stale the cached table is.
func (s *Server) handleHealth(c *gin.Context) {
	cacheAge := "empty"
	if age, ok := s.cache.Age(); ok {
		cacheAge = age.Truncate(time.Second).String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"cached_records": s.cache.Size(),
		"cache_age":      cacheAge,
	})
}

// handleMetrics exposes the process counters, gauges and timings.
func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, logger.GetMetricsSnapshot())
}

// queryFilter builds a filter from the request's query parameters. Invalid
// values are rejected rather than silently ignored.
func queryFilter(c *gin.Context) (*filter.Filter, error) {
	f := filter.NewFilter()

	if raw := c.Query("anio"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			return nil, fmt.Errorf("invalid anio parameter: %q", raw)
		}
		f.Years = append(f.Years, year)
	}

	if raw := c.Query("mes"); raw != "" {
		month := series.CanonicalMonth(raw)
		if series.MonthIndex(month) < 0 {
			return nil, fmt.Errorf("invalid mes parameter: %q", raw)
		}
		f.Months = append(f.Months, month)
	}

	if raw := c.Query("fin"); raw != "" {
		end := series.NormalizeEnd(raw)
		if end == "" {
			return nil, fmt.Errorf("invalid fin parameter: %q", raw)
		}
		f.Ends = append(f.Ends, end)
	}

	return f, nil
}
