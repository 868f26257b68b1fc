package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
// It matches the access token lifetime so a valid token is never
// reported as revoked just because its cache entry aged out.
const AuthCacheTTL = 24 * time.Hour

// WorkspaceCachePrefix is the prefix used for cached workspace documents.
const WorkspaceCachePrefix = "workspace:"

// WorkspaceCacheTTL is the time-to-live for cached workspace documents.
const WorkspaceCacheTTL = 5 * time.Minute
