package session

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "salon_session"

// Manager emite e resolve a identidade de sessão. O cookie carrega um
// token assinado (HS256) com o id da sessão; o vínculo com a conta fica
// no Store, então destruir a sessão revoga o cookie mesmo antes do exp.
type Manager struct {
	store       Store
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewManager(store Store, secret string, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{
		store:       store,
		secret:      []byte(secret),
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Issue cria a sessão e grava o cookie. remember estende a validade.
func (m *Manager) Issue(c *gin.Context, accountID uint, remember bool) error {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	sid := uuid.NewString()
	if err := m.store.Save(c.Request.Context(), sid, accountID, ttl); err != nil {
		return err
	}

	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetCookie(CookieName, signed, int(ttl.Seconds()), "/", "", false, true)
	return nil
}

// AccountID resolve o cookie da requisição para a conta logada.
func (m *Manager) AccountID(c *gin.Context) (uint, bool) {
	sid, ok := m.sessionID(c)
	if !ok {
		return 0, false
	}

	accountID, err := m.store.Get(c.Request.Context(), sid)
	if err != nil {
		return 0, false
	}
	return accountID, true
}

// Clear destrói a sessão incondicionalmente. No-op se já deslogado.
func (m *Manager) Clear(c *gin.Context) {
	if sid, ok := m.sessionID(c); ok {
		_ = m.store.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

func (m *Manager) sessionID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return "", false
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
