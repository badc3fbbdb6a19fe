package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/alumnet/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{common.ErrorValidation, http.StatusBadRequest, "Invalid input"},
	{common.ErrorAlreadyExists, http.StatusConflict, "User already exists"},
	{common.ErrorNotFound, http.StatusNotFound, "User not found"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "Invalid credentials"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "Invalid or expired token"},
	{common.ErrNotVerified, http.StatusForbidden, "Please verify your email first"},
	{common.ErrAlreadyVerified, http.StatusBadRequest, "Email already verified"},
	{common.ErrInvalidOTP, http.StatusBadRequest, "Invalid verification code"},
	{common.ErrOTPExpired, http.StatusBadRequest, "Verification code expired. Please request a new one"},
	{common.ErrTooManyAttempts, http.StatusBadRequest, "Too many attempts. Please request a new code"},
}

// writeError maps service errors onto a status code and a {"message"} body.
// Anything unknown is logged and reported as a 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.AbortWithStatusJSON(m.status, gin.H{"message": m.message})
			return
		}
	}

	h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

var fieldLabels = map[string]string{
	"Email":       "Email",
	"Password":    "Password",
	"FirstName":   "First name",
	"LastName":    "Last name",
	"PassoutYear": "Passout year",
	"OTP":         "Verification code",
	"Title":       "Title",
	"Company":     "Company",
	"ApplyURL":    "Apply URL",
}

// writeBindError reports the first failed binding rule in plain words.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": describe(verrs[0])})
}

func describe(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "gte", "lte":
		return label + " is out of range"
	case "len", "numeric":
		return label + " must be a 6-digit code"
	case "url":
		return label + " must be a valid URL"
	}
	return label + " is invalid"
}
