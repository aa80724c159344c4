package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Códigos usados pelos usecases e repositórios.
const (
	CodeNotFound           = "not_found"
	CodeConnectionError    = "connection_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUsernameTaken      = "username_taken"
	CodeEmailTaken         = "email_taken"
	CodeServiceNameTaken   = "service_name_taken"
	CodeServiceInUse       = "service_in_use"
	CodeClientInUse        = "client_in_use"
	CodeInvalidState       = "invalid_state"
	CodeInvalidEmailDomain = "invalid_email_domain"
)

func NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error", gin.H{
		"Title":   "404",
		"Message": "Página ou registro não encontrado.",
	})
	c.Abort()
}

func ServerErrorPage(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"Title":   "Erro",
		"Message": "Ocorreu um erro inesperado. Tente novamente.",
	})
	c.Abort()
}
