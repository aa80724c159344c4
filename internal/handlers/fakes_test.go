package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vidalapps/salon-manager/internal/audit"
	"github.com/vidalapps/salon-manager/internal/middleware"
	"github.com/vidalapps/salon-manager/internal/models"
	"github.com/vidalapps/salon-manager/internal/session"
	ucauth "github.com/vidalapps/salon-manager/internal/usecase/auth"
	ucschedule "github.com/vidalapps/salon-manager/internal/usecase/schedule"
)

// ============================================================
// Fake: contas
// ============================================================

type fakeAccounts struct {
	seq      uint
	accounts []*models.Account
}

func (f *fakeAccounts) FindByID(_ context.Context, id uint) (*models.Account, error) {
	for _, acct := range f.accounts {
		if acct.ID == id {
			return acct, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	for _, acct := range f.accounts {
		if acct.Email == email {
			return acct, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	for _, acct := range f.accounts {
		if acct.Username == username {
			return acct, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccounts) Create(_ context.Context, acct *models.Account) error {
	f.seq++
	acct.ID = f.seq
	f.accounts = append(f.accounts, acct)
	return nil
}

func (f *fakeAccounts) seed(t *testing.T, username, email, password string) *models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	acct := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := f.Create(context.Background(), acct); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return acct
}

// ============================================================
// Fake: catálogo de serviços
// ============================================================

type fakeCatalog struct {
	seq          uint
	services     []*models.Service
	appointments map[uint]int64 // serviceID → qtde de agendamentos
}

func (f *fakeCatalog) List(_ context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id uint) (*models.Service, error) {
	for _, svc := range f.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) FindByName(_ context.Context, name string, excludeID uint) (*models.Service, error) {
	for _, svc := range f.services {
		if svc.Name == name && svc.ID != excludeID {
			return svc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) Create(_ context.Context, svc *models.Service) error {
	f.seq++
	svc.ID = f.seq
	f.services = append(f.services, svc)
	return nil
}

func (f *fakeCatalog) Update(_ context.Context, svc *models.Service) error {
	for i, existing := range f.services {
		if existing.ID == svc.ID {
			f.services[i] = svc
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCatalog) Delete(_ context.Context, id uint) error {
	for i, svc := range f.services {
		if svc.ID == id {
			f.services = append(f.services[:i], f.services[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCatalog) CountAppointments(_ context.Context, serviceID uint) (int64, error) {
	return f.appointments[serviceID], nil
}

func (f *fakeCatalog) seed(name string, price float64, duration int) *models.Service {
	svc := &models.Service{Name: name, Price: price, DurationMinutes: duration}
	_ = f.Create(context.Background(), svc)
	return svc
}

// ============================================================
// Fake: clientes
// ============================================================

type fakeClients struct {
	seq     uint
	clients []*models.Client
}

func (f *fakeClients) List(_ context.Context, query string) ([]models.Client, error) {
	out := make([]models.Client, 0, len(f.clients))
	for _, cl := range f.clients {
		if query != "" &&
			!strings.Contains(strings.ToLower(cl.Name), strings.ToLower(query)) &&
			!strings.Contains(cl.Phone, query) &&
			!strings.Contains(cl.Email, strings.ToLower(query)) {
			continue
		}
		out = append(out, *cl)
	}
	return out, nil
}

func (f *fakeClients) FindByID(_ context.Context, id uint) (*models.Client, error) {
	for _, cl := range f.clients {
		if cl.ID == id {
			return cl, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClients) Create(_ context.Context, client *models.Client) error {
	f.seq++
	client.ID = f.seq
	f.clients = append(f.clients, client)
	return nil
}

func (f *fakeClients) Update(_ context.Context, client *models.Client) error {
	for i, existing := range f.clients {
		if existing.ID == client.ID {
			f.clients[i] = client
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeClients) seed(name, phone, email string) *models.Client {
	cl := &models.Client{Name: name, Phone: phone, Email: email}
	_ = f.Create(context.Background(), cl)
	return cl
}

// ============================================================
// Fake: agenda
// ============================================================

type fakeSchedule struct {
	clients  *fakeClients
	catalog  *fakeCatalog
	seq      uint
	schedule []*models.Appointment
}

func (f *fakeSchedule) GetClient(ctx context.Context, clientID uint) (*models.Client, error) {
	return f.clients.FindByID(ctx, clientID)
}

func (f *fakeSchedule) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	return f.catalog.FindByID(ctx, serviceID)
}

func (f *fakeSchedule) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.seq++
	ap.ID = f.seq
	f.schedule = append(f.schedule, ap)
	return nil
}

func (f *fakeSchedule) GetAppointment(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	for _, ap := range f.schedule {
		if ap.ID == appointmentID {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSchedule) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, existing := range f.schedule {
		if existing.ID == ap.ID {
			f.schedule[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeSchedule) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range f.schedule {
		if ap.ScheduledAt.Before(start) || !ap.ScheduledAt.Before(end) {
			continue
		}

		withRefs := *ap
		if cl, err := f.clients.FindByID(ctx, ap.ClientID); err == nil {
			withRefs.Client = *cl
		}
		if svc, err := f.catalog.FindByID(ctx, ap.ServiceID); err == nil {
			withRefs.Service = *svc
		}
		out = append(out, withRefs)
	}
	return out, nil
}

func (f *fakeSchedule) seed(clientID, serviceID uint, at time.Time, status string) *models.Appointment {
	ap := &models.Appointment{
		ClientID:    clientID,
		ServiceID:   serviceID,
		ScheduledAt: at,
		Status:      status,
	}
	_ = f.CreateAppointment(context.Background(), ap)
	return ap
}

// ============================================================
// Fake: auditoria
// ============================================================

type memoryRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (m *memoryRecorder) Log(_ *uint, action, _ string, _ *uint, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
	return nil
}

// ============================================================
// App de teste
// ============================================================

type testApp struct {
	router   *gin.Engine
	accounts *fakeAccounts
	catalog  *fakeCatalog
	clients  *fakeClients
	schedule *fakeSchedule
	sessions *session.Manager
}

// newTestApp monta o app inteiro contra repositórios em memória, com os
// templates reais. A árvore de dependências espelha a da partida.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := &fakeAccounts{}
	catalog := &fakeCatalog{appointments: map[uint]int64{}}
	clients := &fakeClients{}
	schedule := &fakeSchedule{clients: clients, catalog: catalog}

	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", time.Hour, 720*time.Hour)
	dispatcher := audit.NewDispatcher(&memoryRecorder{}, zap.NewNop())

	registerUC := ucauth.NewRegisterAccount(accounts, dispatcher, false)
	loginUC := ucauth.NewLoginAccount(accounts, dispatcher)

	bookUC := ucschedule.NewBookAppointment(schedule, dispatcher)
	completeUC := ucschedule.NewCompleteAppointment(schedule, dispatcher)
	cancelUC := ucschedule.NewCancelAppointment(schedule, dispatcher)
	noShowUC := ucschedule.NewMarkNoShow(schedule, dispatcher)
	listByDateUC := ucschedule.NewListAppointmentsByDate(schedule)

	authHandler := NewAuthHandler(registerUC, loginUC, accounts, sessions)
	dashboardHandler := NewDashboardHandler(listByDateUC)
	serviceHandler := NewServiceHandler(catalog, dispatcher)
	clientHandler := NewClientHandler(clients, dispatcher)
	appointmentHandler := NewAppointmentHandler(
		bookUC, completeUC, cancelUC, noShowUC, listByDateUC, clients, catalog,
	)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")

	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	secured := r.Group("/")
	secured.Use(middleware.RequireSession(sessions, accounts))
	{
		secured.GET("/", dashboardHandler.Dashboard)
		secured.GET("/dashboard", dashboardHandler.Dashboard)
		secured.GET("/logout", authHandler.Logout)

		secured.GET("/services", serviceHandler.List)
		secured.GET("/service/new", serviceHandler.NewPage)
		secured.POST("/service/new", serviceHandler.Create)
		secured.GET("/service/:id/edit", serviceHandler.EditPage)
		secured.POST("/service/:id/edit", serviceHandler.Update)
		secured.POST("/service/:id/delete", serviceHandler.Delete)

		secured.GET("/clients", clientHandler.List)
		secured.GET("/client/new", clientHandler.NewPage)
		secured.POST("/client/new", clientHandler.Create)
		secured.GET("/client/:id/edit", clientHandler.EditPage)
		secured.POST("/client/:id/edit", clientHandler.Update)

		secured.GET("/appointments", appointmentHandler.Agenda)
		secured.GET("/appointment/new", appointmentHandler.NewPage)
		secured.POST("/appointment/new", appointmentHandler.Book)
		secured.POST("/appointment/:id/complete", appointmentHandler.Complete)
		secured.POST("/appointment/:id/cancel", appointmentHandler.Cancel)
		secured.POST("/appointment/:id/no-show", appointmentHandler.NoShow)
	}

	return &testApp{
		router:   r,
		accounts: accounts,
		catalog:  catalog,
		clients:  clients,
		schedule: schedule,
		sessions: sessions,
	}
}

// login emite uma sessão para a conta e devolve o cookie.
func (a *testApp) login(t *testing.T, accountID uint) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)

	if err := a.sessions.Issue(c, accountID, false); err != nil {
		t.Fatalf("issue session: %v", err)
	}

	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatal("session cookie not issued")
	return nil
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// flashMessage decodifica o aviso gravado na resposta, para asserções
// de mensagens que só aparecem depois do redirect.
func flashMessage(t *testing.T, w *httptest.ResponseRecorder) (category, text string) {
	t.Helper()

	for _, ck := range w.Result().Cookies() {
		if ck.Name != "salon_flash" || ck.MaxAge < 0 {
			continue
		}

		b, err := base64.RawURLEncoding.DecodeString(ck.Value)
		if err != nil {
			t.Fatalf("decode flash cookie: %v", err)
		}

		var msg struct {
			Category string `json:"category"`
			Text     string `json:"text"`
		}
		if err := json.Unmarshal(b, &msg); err != nil {
			t.Fatalf("unmarshal flash cookie: %v", err)
		}
		return msg.Category, msg.Text
	}
	return "", ""
}
