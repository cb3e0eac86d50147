package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blogapi/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// sendSuccess renders the uniform success envelope, merging extra fields
// (pagination metadata, tokens) into the top level.
func sendSuccess(c *gin.Context, statusCode int, data any, extra gin.H) {
	if statusCode == http.StatusNoContent {
		c.JSON(statusCode, gin.H{"status": "success", "data": nil})
		return
	}

	body := gin.H{"status": "success", "data": data}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// fail hands the error to the central renderer and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON binds the request body against the operation's allow-list
// struct. Validation failures keep their per-field messages; anything else
// (bad JSON, wrong types) becomes a plain 400.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fail(c, err)
	} else {
		fail(c, apperr.New("Invalid request body", http.StatusBadRequest))
	}
	return false
}

// parseID reads a numeric path parameter, failing the request with a 400
// when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fail(c, apperr.New(fmt.Sprintf("Invalid %s: %s", name, raw), http.StatusBadRequest))
		return 0, false
	}
	return uint(id), true
}

// authorSelect trims the populated author down to its identity fields;
// the author's own timestamps stay out of post payloads.
func authorSelect(gdb *gorm.DB) *gorm.DB {
	return gdb.Select("id", "name", "email", "role", "password_changed_at")
}
