package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AlexCourivaud/ShareTech2/apperrors"
	"github.com/AlexCourivaud/ShareTech2/middleware"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

// statusFor is the single place where error kinds become HTTP codes.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindInvalidReference, apperrors.KindInvalidStatus:
		return http.StatusBadRequest
	case apperrors.KindPermissionDenied:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict, apperrors.KindAlreadyTerminated, apperrors.KindAlreadyInState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	var ae *apperrors.Error
	if errors.As(err, &ae) {
		body := gin.H{"error": ae.Message, "kind": ae.Kind}
		if ae.Reason != "" {
			body["reason"] = ae.Reason
		}
		c.JSON(statusFor(ae.Kind), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func actorFrom(c *gin.Context) (permissions.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return permissions.Actor{}, false
	}
	return actor, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}
