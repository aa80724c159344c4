package flash

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const cookieName = "salon_flash"

type Message struct {
	Category string `json:"category"` // success | danger | info
	Text     string `json:"text"`
}

// Set grava um aviso transitório que sobrevive a um redirect.
func Set(c *gin.Context, category, text string) {
	b, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", false, true)
}

// Pop lê e apaga o aviso pendente, se houver.
func Pop(c *gin.Context) []Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}

	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var msg Message
	if err := json.Unmarshal(b, &msg); err != nil {
		return nil
	}
	return []Message{msg}
}
