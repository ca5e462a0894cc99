package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"go.uber.org/zap"
)

const (
	principalKey  = "principal"
	requestIDKey  = "request_id"
	sessionCookie = "session_id"
	customerIDHdr = "X-Customer-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// ResolvePrincipal trusts the upstream auth provider: an authenticated
// customer arrives as a header, everyone else gets a session cookie minted
// on first contact.
func ResolvePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(customerIDHdr); raw != "" {
			customerID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || customerID <= 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
				return
			}

			c.Set(principalKey, domain.Principal{CustomerID: customerID})
			c.Next()
			return
		}

		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, int((30 * 24 * time.Hour).Seconds()), "/", "", false, true)
		}

		c.Set(principalKey, domain.Principal{SessionID: sessionID})
		c.Next()
	}
}

func principalFrom(c *gin.Context) domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}
	}

	principal, _ := v.(domain.Principal)
	return principal
}

// requireCustomer aborts for anonymous principals on endpoints that need an
// authenticated customer, i.e. checkout and order history.
func requireCustomer(c *gin.Context) (domain.Principal, bool) {
	principal := principalFrom(c)
	if principal.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return principal, false
	}

	return principal, true
}
