package middleware

import (
	"net/http"
	"strings"

	"hively/config"
	"hively/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token, checks it against the
// revocation cache, and stores the caller's identity in the request context.
func JWTAuthMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		// The auth cache holds the hash of the token issued last; a missing or
		// mismatched entry means the token was revoked or superseded.
		if authCache != nil {
			key := utils.AuthCachePrefix + userID
			cachedHash, err := authCache.Get(c.Request.Context(), key).Result()
			switch {
			case err == redis.Nil, err == nil && cachedHash != utils.HashToken(tokenString):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token revoked",
					"code":  0,
				})
				return
			case err != nil:
				// Cache outage. Strict mode refuses to serve without a
				// revocation check; the default degrades to signature-only
				// validation so a Redis outage does not take the API down.
				if config.AppConfig.AuthStrictRevocation {
					c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
						"error": "Authorization temporarily unavailable",
						"code":  0,
					})
					return
				}
				utils.GetLogger().Warn("auth cache unavailable, accepting token signature only",
					zap.Error(err))
			default:
				// Keep active sessions warm.
				_ = authCache.Expire(c.Request.Context(), key, utils.AuthCacheTTL).Err()
			}
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
