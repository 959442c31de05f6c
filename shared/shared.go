package shared

import (
	"context"
	"fmt"
	"strings"
	"villa/shared/cache"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a prefix with the string form of every part, e.g.
// BuildCacheKey("pricing:quote", "2026-02-10", "2026-02-12") -> "pricing:quote:2026-02-10:2026-02-12".
func BuildCacheKey(prefix string, parts ...any) string {
	var sb strings.Builder

	sb.WriteString(prefix)

	for _, part := range parts {
		sb.WriteString(cacheKeySeparator)
		fmt.Fprint(&sb, part)
	}

	return sb.String()
}

// InvalidateCaches drops every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+"*"); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// MaskPhone keeps the last four digits of a phone number for log lines.
func MaskPhone(phone string) string {
	const visible = 4

	if len(phone) <= visible {
		return phone
	}

	return strings.Repeat("*", len(phone)-visible) + phone[len(phone)-visible:]
}
