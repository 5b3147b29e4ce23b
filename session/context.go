package session

import "github.com/gin-gonic/gin"

const managerKey = "session_manager"

func SetManagerToContext(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(managerKey, m)
		c.Next()
	}
}

func ManagerInstance(c *gin.Context) *Manager {
	v, ok := c.Get(managerKey)
	if !ok {
		return nil
	}
	m, _ := v.(*Manager)
	return m
}
