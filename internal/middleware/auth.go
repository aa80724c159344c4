package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	domain "github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/session"
)

const (
	ContextAccountID = "accountID"
	ContextAccount   = "account"
)

// RequireSession resolve o cookie para a conta logada. Sem identidade,
// redireciona para o login preservando o caminho pedido em ?next=.
func RequireSession(mgr *session.Manager, accounts domain.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, ok := mgr.AccountID(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		acct, err := accounts.FindByID(c.Request.Context(), accountID)
		if err != nil {
			// Sessão órfã (conta sumiu ou banco fora): derruba e manda logar.
			mgr.Clear(c)
			redirectToLogin(c)
			return
		}

		c.Set(ContextAccountID, acct.ID)
		c.Set(ContextAccount, acct)

		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		next += "?" + q
	}

	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
	c.Abort()
}
