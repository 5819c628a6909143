package middleware

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/repos"
)

// userIDKey is the gin context key the middleware stores the acting user
// under.
const userIDKey = "userID"

// RequireUserMiddleware resolves the acting user from the X-User-ID header.
// Without the header it falls back to the oldest user in the database, which
// keeps single-user installs and local development working without a client
// change. Real authentication is expected to sit in front of this service.
type RequireUserMiddleware struct {
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewRequireUserMiddleware(log *logger.Logger, userRepo repos.UserRepo) *RequireUserMiddleware {
  middlewareLog := log.With("middleware", "RequireUser")
  return &RequireUserMiddleware{log: middlewareLog, userRepo: userRepo}
}

func (rm *RequireUserMiddleware) RequireUser() gin.HandlerFunc {
  return func(c *gin.Context) {
    header := c.GetHeader("X-User-ID")
    if header != "" {
      userID, err := uuid.Parse(header)
      if err != nil {
        c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid X-User-ID header"})
        return
      }
      users, err := rm.userRepo.GetByIDs(c.Request.Context(), nil, []uuid.UUID{userID})
      if err != nil {
        c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
        return
      }
      if len(users) == 0 {
        c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
        return
      }
      c.Set(userIDKey, userID)
      c.Next()
      return
    }

    first, err := rm.userRepo.GetFirst(c.Request.Context(), nil)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
      return
    }
    if first == nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no users exist; create one first"})
      return
    }
    c.Set(userIDKey, first.ID)
    c.Next()
  }
}

// UserID returns the acting user set by RequireUser. The second return is
// false on routes that skipped the middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
  value, exists := c.Get(userIDKey)
  if !exists {
    return uuid.Nil, false
  }
  userID, ok := value.(uuid.UUID)
  return userID, ok
}
