package response

import (
	"math/rand/v2"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

var notFoundMessages = []string{
	"עמוד לא נמצא",
	"לא ניתן למצוא את העמוד המבוקש",
	"ייתכן שהעמוד הוסר או שהקישור שגוי",
}

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, notFoundMessages[rand.IntN(len(notFoundMessages))])
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}

// Unavailable sends a 503 response listing the underlying failures, the
// data-load error state of the site.
func Unavailable(c *gin.Context, message string, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
		"ok":      0,
		"code":    http.StatusServiceUnavailable,
		"message": message,
		"errors":  errs,
	})
}

// Loading sends a 503 response for data that has not been fetched yet.
func Loading(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
		"ok":      0,
		"code":    http.StatusServiceUnavailable,
		"message": "loading",
		"loading": true,
	})
}

// Status sends an error envelope with an arbitrary status code.
func Status(c *gin.Context, code int, message string) {
	abort(c, code, message)
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"ok": 0, "code": code, "message": message})
}
