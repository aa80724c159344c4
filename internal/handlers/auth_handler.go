package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/vidalapps/salon-manager/internal/domain/account"
	"github.com/vidalapps/salon-manager/internal/flash"
	"github.com/vidalapps/salon-manager/internal/forms"
	"github.com/vidalapps/salon-manager/internal/httperr"
	"github.com/vidalapps/salon-manager/internal/session"
	ucauth "github.com/vidalapps/salon-manager/internal/usecase/auth"
)

type AuthHandler struct {
	registerUC *ucauth.RegisterAccount
	loginUC    *ucauth.LoginAccount
	accounts   domain.Repository
	sessions   *session.Manager
}

func NewAuthHandler(
	registerUC *ucauth.RegisterAccount,
	loginUC *ucauth.LoginAccount,
	accounts domain.Repository,
	sessions *session.Manager,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		accounts:   accounts,
		sessions:   sessions,
	}
}

// ======================================================
// REGISTER
// ======================================================

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if _, ok := h.sessions.AccountID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "register", gin.H{
		"Form":   forms.RegisterForm{},
		"Errors": forms.Errors{},
		"Flash":  flash.Pop(c),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := h.sessions.AccountID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	form := forms.BindRegister(c)

	errs := form.Validate(c.Request.Context(), h.accounts)
	if errs.Any() {
		c.HTML(http.StatusOK, "register", gin.H{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	acct, err := h.registerUC.Execute(c.Request.Context(), ucauth.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		// A corrida perdida para o índice único volta como erro de campo.
		switch {
		case httperr.IsBusiness(err, httperr.CodeUsernameTaken):
			errs["username"] = "Este nome de usuário já está em uso."
		case httperr.IsBusiness(err, httperr.CodeEmailTaken):
			errs["email"] = "Este email já está cadastrado."
		case httperr.IsBusiness(err, httperr.CodeInvalidEmailDomain):
			errs["email"] = "O domínio do e-mail informado não parece ser válido."
		default:
			errs["form"] = "Erro de conexão com o banco de dados ao registrar."
		}

		c.HTML(http.StatusOK, "register", gin.H{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	flash.Set(c, "success",
		"Conta criada com sucesso para "+acct.Username+"! Agora você pode fazer o login.")
	c.Redirect(http.StatusFound, "/login")
}

// ======================================================
// LOGIN
// ======================================================

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := h.sessions.AccountID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "login", gin.H{
		"Form":   forms.LoginForm{},
		"Errors": forms.Errors{},
		"Next":   c.Query("next"),
		"Flash":  flash.Pop(c),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := h.sessions.AccountID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	form := forms.BindLogin(c)
	next := c.PostForm("next")

	errs := form.Validate()
	if errs.Any() {
		c.HTML(http.StatusOK, "login", gin.H{
			"Form":   form,
			"Errors": errs,
			"Next":   next,
		})
		return
	}

	acct, err := h.loginUC.Execute(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		msg := "Login sem sucesso. Verifique o email e a senha."
		if httperr.IsBusiness(err, httperr.CodeConnectionError) {
			msg = "Erro de conexão com o banco de dados."
		}

		c.HTML(http.StatusOK, "login", gin.H{
			"Form":   form,
			"Errors": errs,
			"Next":   next,
			"Flash":  []flash.Message{{Category: "danger", Text: msg}},
		})
		return
	}

	if err := h.sessions.Issue(c, acct.ID, form.Remember); err != nil {
		c.HTML(http.StatusOK, "login", gin.H{
			"Form":   form,
			"Errors": errs,
			"Next":   next,
			"Flash": []flash.Message{{
				Category: "danger",
				Text:     "Não foi possível iniciar a sessão. Tente novamente.",
			}},
		})
		return
	}

	flash.Set(c, "success", "Login bem-sucedido!")
	c.Redirect(http.StatusFound, safeNext(next))
}

// ======================================================
// LOGOUT
// ======================================================

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

// safeNext só aceita caminhos locais, para o ?next= não virar open redirect.
func safeNext(next string) string {
	if next == "" {
		return "/dashboard"
	}

	decoded, err := url.QueryUnescape(next)
	if err != nil {
		return "/dashboard"
	}

	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return "/dashboard"
	}
	return decoded
}
