package tools

import "github.com/gin-gonic/gin"

const completerKey = "completer"

func SetCompleterToContext(completer Completer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(completerKey, completer)
		c.Next()
	}
}

func CompleterInstance(c *gin.Context) Completer {
	v, ok := c.Get(completerKey)
	if !ok {
		return nil
	}
	completer, _ := v.(Completer)
	return completer
}
