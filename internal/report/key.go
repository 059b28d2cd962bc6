package report

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/withoutfanfare/developer-test/internal/domain"
)

const (
	// KeyPrefix namespaces report entries in a shared cache.
	KeyPrefix = "task_report:v1"
	// AllUsers is the filter segment for a request without a user filter.
	AllUsers = "all"
)

// CacheKey derives the key for req from its day-granular window and its
// normalized filter. An absent and an empty filter share the AllUsers
// segment; any other filter is hashed so it cannot collide with it.
func CacheKey(req domain.ReportRequest) string {
	return strings.Join([]string{KeyPrefix, req.StartDate(), req.EndDate(), filterSegment(req.UserFilter)}, ":")
}

func filterSegment(filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return AllUsers
	}
	sum := sha256.Sum256([]byte(filter))
	return "q-" + hex.EncodeToString(sum[:])
}
