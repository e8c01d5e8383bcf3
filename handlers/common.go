package handlers

import (
	"context"
	"net/http"
	"time"

	"devconnect/auth"
	"devconnect/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared state and helpers for all handler files.

var creds *auth.Service

// Init wires the credential service in at startup.
func Init(service *auth.Service) {
	creds = service
}

const opTimeout = 10 * time.Second

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// callerID resolves the authenticated user's ObjectID from the gin context.
// The auth middleware has already run on every route that calls this, so a
// failure here means a malformed token subject, treated as unauthorized.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func dbError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}
