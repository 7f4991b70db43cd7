package analytics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logger"
)

const recordTimeout = 5 * time.Second

// untrackedPrefixes are paths that never count as visits.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/favicon",
	"/health",
	"/metrics",
	"/api/admin",
}

// Recorder is the part of Store the tracker needs.
type Recorder interface {
	Record(ctx context.Context, v Visit) error
}

// Tracker records page visits in the background.
type Tracker struct {
	recorder Recorder
	hasher   *Hasher
	logger   logger.Logger
	wg       sync.WaitGroup
}

// NewTracker creates a Tracker.
func NewTracker(recorder Recorder, hasher *Hasher, log logger.Logger) *Tracker {
	return &Tracker{recorder: recorder, hasher: hasher, logger: log}
}

// Middleware records each tracked request. Requests carrying "DNT: 1" are
// not recorded.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !Tracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := Visit{
			HashedIP:  t.hasher.Hash(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
		}
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
			defer cancel()
			if err := t.recorder.Record(ctx, visit); err != nil {
				t.logger.Warn("Error recording visitor", logger.Error(err))
			}
		}()
		c.Next()
	}
}

// Wait blocks until in-flight recordings finish.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

// Tracked reports whether visits to path are recorded.
func Tracked(path string) bool {
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}
