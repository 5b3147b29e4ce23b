package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	dbpkg "nutricoach/db"
	"nutricoach/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// ParamID reads a positive integer path parameter. Anything else is answered
// with 404, the same as an id that does not exist.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, "not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body into dst. An empty body leaves dst untouched.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func requireDB(c *gin.Context) (*gorm.DB, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}

func requireCompleter(c *gin.Context) (tools.Completer, bool) {
	completer := tools.CompleterInstance(c)
	if completer == nil {
		RespondError(c, "completion client not configured", http.StatusInternalServerError)
		return nil, false
	}
	return completer, true
}
