package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetThenPop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Primeira requisição grava o cookie.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Set(c, "success", "Serviço cadastrado com sucesso!")

	cookies := w.Result().Cookies()
	var raw string
	for _, ck := range cookies {
		if ck.Name == "salon_flash" {
			raw = ck.Value
		}
	}
	if raw == "" {
		t.Fatal("flash cookie not written")
	}

	// Segunda requisição (pós-redirect) consome o aviso.
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(&http.Cookie{Name: "salon_flash", Value: raw})

	msgs := Pop(c2)
	if len(msgs) != 1 {
		t.Fatalf("Pop() returned %d messages, want 1", len(msgs))
	}
	if msgs[0].Category != "success" {
		t.Errorf("Category = %q, want success", msgs[0].Category)
	}
	if msgs[0].Text != "Serviço cadastrado com sucesso!" {
		t.Errorf("Text = %q", msgs[0].Text)
	}

	// Pop deve invalidar o cookie.
	var cleared bool
	for _, ck := range w2.Result().Cookies() {
		if ck.Name == "salon_flash" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Pop did not expire the flash cookie")
	}
}

func TestPopWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if msgs := Pop(c); msgs != nil {
		t.Errorf("Pop() = %v, want nil", msgs)
	}
}

func TestPopGarbageCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: "salon_flash", Value: "%%%not-base64%%%"})

	if msgs := Pop(c); msgs != nil {
		t.Errorf("Pop() = %v, want nil for undecodable cookie", msgs)
	}
}
