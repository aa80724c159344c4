package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/dashboard")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	loc := w.Header().Get("Location")
	if loc != "/login?next=%2Fdashboard" {
		t.Errorf("Location = %q, want /login?next=%%2Fdashboard", loc)
	}
}

func TestRegisterSuccess(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/register", url.Values{
		"username":         {"gestor"},
		"email":            {"gestor@salao.com"},
		"password":         {"senha123"},
		"confirm_password": {"senha123"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	if len(app.accounts.accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(app.accounts.accounts))
	}

	acct := app.accounts.accounts[0]
	if acct.PasswordHash == "senha123" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte("senha123")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}

	if cat, text := flashMessage(t, w); cat != "success" || !strings.Contains(text, "gestor") {
		t.Errorf("flash = (%q, %q), want success mentioning the username", cat, text)
	}
}

func TestRegisterFieldErrorsRerender(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/register", url.Values{
		"username":         {"gestor"},
		"email":            {"gestor@salao.com"},
		"password":         {"senha123"},
		"confirm_password": {"diferente"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "As senhas devem ser iguais.") {
		t.Error("body missing confirm password error")
	}
	if len(app.accounts.accounts) != 0 {
		t.Errorf("accounts = %d, want 0", len(app.accounts.accounts))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")

	w := app.postForm("/register", url.Values{
		"username":         {"gestor"},
		"email":            {"outro@salao.com"},
		"password":         {"senha123"},
		"confirm_password": {"senha123"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "já está em uso") {
		t.Error("body missing duplicate username error")
	}
	if len(app.accounts.accounts) != 1 {
		t.Errorf("accounts = %d, want 1 (no new account)", len(app.accounts.accounts))
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	app := newTestApp(t)
	app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")

	// Senha errada e email desconhecido respondem igual, para não
	// permitir enumeração de contas.
	wrongPass := app.postForm("/login", url.Values{
		"email":    {"gestor@salao.com"},
		"password": {"errada"},
	})
	unknownEmail := app.postForm("/login", url.Values{
		"email":    {"ninguem@salao.com"},
		"password": {"senha123"},
	})

	for name, w := range map[string]int{"wrong password": wrongPass.Code, "unknown email": unknownEmail.Code} {
		if w != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", name, w)
		}
	}

	const msg = "Login sem sucesso. Verifique o email e a senha."
	if !strings.Contains(wrongPass.Body.String(), msg) {
		t.Error("wrong password: body missing uniform failure message")
	}
	if !strings.Contains(unknownEmail.Body.String(), msg) {
		t.Error("unknown email: body missing uniform failure message")
	}
}

func TestLoginSuccessGrantsAccess(t *testing.T) {
	app := newTestApp(t)
	app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")

	w := app.postForm("/login", url.Values{
		"email":    {"gestor@salao.com"},
		"password": {"senha123"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "salon_session" {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	dash := app.get("/dashboard", cookie)
	if dash.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, want 200", dash.Code)
	}
	if !strings.Contains(dash.Body.String(), "gestor") {
		t.Error("dashboard does not greet the logged-in account")
	}
}

func TestLoginHonoursNext(t *testing.T) {
	app := newTestApp(t)
	app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")

	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/services", "/services"},
		{"empty", "", "/dashboard"},
		{"protocol-relative", "//evil.example.com", "/dashboard"},
		{"absolute url", "https://evil.example.com", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.postForm("/login", url.Values{
				"email":    {"gestor@salao.com"},
				"password": {"senha123"},
				"next":     {tt.next},
			})

			if w.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != tt.want {
				t.Errorf("Location = %q, want %q", loc, tt.want)
			}
		})
	}
}

func TestLoggedInUserSkipsAuthPages(t *testing.T) {
	app := newTestApp(t)
	acct := app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")
	cookie := app.login(t, acct.ID)

	for _, path := range []string{"/login", "/register"} {
		w := app.get(path, cookie)
		if w.Code != http.StatusFound {
			t.Errorf("GET %s: status = %d, want 302", path, w.Code)
			continue
		}
		if loc := w.Header().Get("Location"); loc != "/dashboard" {
			t.Errorf("GET %s: Location = %q, want /dashboard", path, loc)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	app := newTestApp(t)
	acct := app.accounts.seed(t, "gestor", "gestor@salao.com", "senha123")
	cookie := app.login(t, acct.ID)

	w := app.get("/logout", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("logout status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	// O cookie antigo não resolve mais: a sessão foi destruída no store.
	after := app.get("/dashboard", cookie)
	if after.Code != http.StatusFound {
		t.Errorf("dashboard after logout: status = %d, want 302", after.Code)
	}
}

func TestOrphanSessionIsDropped(t *testing.T) {
	app := newTestApp(t)

	// Sessão válida apontando para conta que não existe mais.
	cookie := app.login(t, 999)

	w := app.get("/dashboard", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("Location = %q, want /login redirect", loc)
	}
}
