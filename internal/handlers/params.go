package handlers

import (
  "fmt"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
)

// parseIDParam parses a uuid path parameter.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
  }
  return id, nil
}

// parseTimeRange reads optional from/to query parameters, accepting RFC3339
// timestamps or plain dates. Defaults to the last 30 days.
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
  now := time.Now().UTC()
  from := now.AddDate(0, 0, -30)
  to := now

  if raw := c.Query("from"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %w", err)
    }
    from = parsed
  }
  if raw := c.Query("to"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %w", err)
    }
    to = parsed
  }
  return from, to, nil
}

func parseTimeParam(raw string) (time.Time, error) {
  if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
    return parsed, nil
  }
  return time.Parse("2006-01-02", raw)
}
