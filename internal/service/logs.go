package service

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/portal-platform/internal/server"
)

// LogEntry is one application log record exposed through the log-management
// module.
type LogEntry struct {
	ID        int64                  `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service"`
	Message   string                 `json:"message"`
	UserID    string                 `json:"userId,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// LogFilter narrows List results. Zero values mean "no filter".
type LogFilter struct {
	Level   string
	Service string
	Page    int
	Limit   int
	Sort    string // "asc" or "desc" by timestamp, default desc
}

// LogService serves application log entries from an in-memory ring. Entries
// come seeded with recent records and grow as the process appends; durable
// log storage is the aggregator's job, not this API's.
type LogService struct {
	server *server.Server

	mu      sync.RWMutex
	entries []LogEntry
	nextID  int64
}

// NewLogService constructs a LogService seeded with recent entries.
func NewLogService(s *server.Server) *LogService {
	svc := &LogService{
		server: s,
		nextID: 1,
	}

	now := time.Now().UTC()
	svc.Append(LogEntry{
		Timestamp: now.Add(-10 * time.Minute),
		Level:     "INFO",
		Service:   "auth-service",
		Message:   "User login successful",
		UserID:    "user123",
		Details:   map[string]interface{}{"ip": "192.168.1.100"},
	})
	svc.Append(LogEntry{
		Timestamp: now.Add(-5 * time.Minute),
		Level:     "ERROR",
		Service:   "ticketing-service",
		Message:   "Ticket assignment failed",
		UserID:    "user456",
		Details:   map[string]interface{}{"error": "Connection timeout"},
	})

	return svc
}

// Append records a log entry, assigning its id and defaulting the timestamp
// to now.
func (s *LogService) Append(entry LogEntry) LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	s.entries = append(s.entries, entry)
	return entry
}

// List returns entries matching the filter plus the total matching count
// before pagination.
func (s *LogService) List(filter LogFilter) ([]LogEntry, int) {
	s.mu.RLock()
	matched := make([]LogEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if filter.Level != "" && !strings.EqualFold(entry.Level, filter.Level) {
			continue
		}
		if filter.Service != "" && entry.Service != filter.Service {
			continue
		}
		matched = append(matched, entry)
	}
	s.mu.RUnlock()

	ascending := filter.Sort == "asc"
	sort.SliceStable(matched, func(i, j int) bool {
		if ascending {
			return matched[i].Timestamp.Before(matched[j].Timestamp)
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	offset := (page - 1) * limit
	if offset >= total {
		return []LogEntry{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return matched[offset:end], total
}

// LogStats aggregates log counts over a period.
type LogStats struct {
	TotalLogs    int            `json:"totalLogs"`
	LogsByLevel  map[string]int `json:"logsByLevel"`
	LogsBySource map[string]int `json:"logsBySource"`
	ErrorRate    float64        `json:"errorRate"`
	Period       string         `json:"period"`
}

// Stats aggregates entries newer than the period cutoff. The error rate is
// the percentage of ERROR entries among the counted ones.
func (s *LogService) Stats(period string, cutoff time.Time) LogStats {
	stats := LogStats{
		LogsByLevel:  map[string]int{},
		LogsBySource: map[string]int{},
		Period:       period,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	errorCount := 0
	for _, entry := range s.entries {
		if entry.Timestamp.Before(cutoff) {
			continue
		}
		stats.TotalLogs++
		stats.LogsByLevel[entry.Level]++
		stats.LogsBySource[entry.Service]++
		if entry.Level == "ERROR" {
			errorCount++
		}
	}

	if stats.TotalLogs > 0 {
		stats.ErrorRate = float64(errorCount) / float64(stats.TotalLogs) * 100
	}
	return stats
}

// Get returns the entry with the given id, or false when absent.
func (s *LogService) Get(id int64) (LogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return LogEntry{}, false
}
