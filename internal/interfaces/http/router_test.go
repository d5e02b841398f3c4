package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roteiro-api/internal/application/auth"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/application/navigation"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/application/scripts"
	"github.com/jhoicas/roteiro-api/internal/application/usecase"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/htmltext"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/localstore"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/stepfiles"
	apphttp "github.com/jhoicas/roteiro-api/internal/interfaces/http"
	"github.com/jhoicas/roteiro-api/pkg/logger"
)

// newTestApp arma la API completa sobre el almacén local en un directorio temporal.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "roteiro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repos := localstore.NewSet(store)
	bus := eventbus.NewMemory()
	sessions := eventbus.NewMemorySessions(time.Hour)
	log := logger.Nop()
	sanitizer := htmltext.NewSanitizer()

	catalog := scripts.NewCatalog(repos.Products, repos.Steps, bus)
	t.Cleanup(catalog.Close)

	operatorUC := usecase.NewOperatorUseCase(repos.Users, bus, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, repos.Companies, sessions, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CompanyUC:     usecase.NewCompanyUseCase(repos.Companies, operatorUC, bus, log),
		ModuleService: usecase.NewModuleService(repos.Companies, bus, log),
		OperatorUC:    operatorUC,
		ProductUC:     usecase.NewProductUseCase(repos.Products, bus, log),
		TabulationUC:  usecase.NewTabulationUseCase(repos.Tabulations, bus, log),
		SituationUC:   usecase.NewSituationUseCase(repos.Situations, bus, log),
		ChannelUC:     usecase.NewChannelUseCase(repos.Channels, bus, log),
		NoteUC:        usecase.NewNoteUseCase(repos.Notes, bus, log),
		StepUC:        scripts.NewStepUseCase(repos.Products, repos.Steps, sanitizer, bus, log),
		ImportUC: scripts.NewImportUseCase(repos.Products, repos.Steps, stepfiles.NewLoader(t.TempDir()),
			sanitizer, bus, ports.NopMetrics{}, log),
		LintUC:       scripts.NewLintUseCase(repos.Products, repos.Steps),
		ExportUC:     scripts.NewExportUseCase(repos.Products, repos.Steps, pdf.NewMarotoPDFGenerator(htmltext.NewExtractor())),
		NavigationUC: navigation.NewSessionUseCase(catalog, sessions, ports.NopMetrics{}, log),
		JWTSecret:    testJWTSecret,
		Log:          log,
	})
	return app
}

// call hace la petición y decodifica la respuesta JSON en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path, token string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func ptr(s string) *string { return &s }

// setupCompany crea la empresa con su admin y devuelve companyID y token del admin.
func setupCompany(t *testing.T, app *fiber.App) (string, string) {
	t.Helper()
	var company dto.CompanyResponse
	status := call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{
		Name: "Contact Center SA", NIT: "900123456", AdminUsername: "admin", AdminPassword: "secreto123",
	}, &company)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, company.ID)

	var login dto.LoginResponse
	status = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		CompanyID: company.ID, Username: "admin", Password: "secreto123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return company.ID, login.Token
}

// setupScript crea un producto con tres pasos: inicio → datos → fin, más un botón colgado.
func setupScript(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	var product dto.ProductResponse
	status := call(t, app, http.MethodPost, "/api/products", token, dto.CreateProductRequest{
		Name: "Tarjeta Oro", ScriptID: "inicio", AttendanceTypes: []string{"receptivo"}, PersonTypes: []string{"fisica"},
	}, &product)
	require.Equal(t, http.StatusCreated, status)

	steps := []dto.SaveStepRequest{
		{ID: "inicio", Title: "Saludo inicial", Content: "<p>Buenos días</p>", Buttons: []dto.ButtonDTO{
			{ID: "seguir", Label: "Continuar", Order: 1, Primary: true, NextStepID: ptr("datos")},
			{ID: "roto", Label: "Opción rota", Order: 2, NextStepID: ptr("fantasma")},
		}},
		{ID: "datos", Title: "Confirmación de Datos", Content: "<p>Confirme su documento</p>", Buttons: []dto.ButtonDTO{
			{ID: "fin", Label: "Finalizar", Order: 1, NextStepID: ptr("cierre")},
		}},
		{ID: "cierre", Title: "Despedida", Buttons: []dto.ButtonDTO{
			{ID: "terminar", Label: "Terminar", Order: 1},
		}},
	}
	for _, s := range steps {
		status = call(t, app, http.MethodPost, "/api/products/"+product.ID+"/steps", token, s, nil)
		require.Equal(t, http.StatusCreated, status, s.ID)
	}
	return product.ID
}

func TestRouter_FlujoDeNavegacion(t *testing.T) {
	app := newTestApp(t)
	_, token := setupCompany(t, app)
	productID := setupScript(t, app, token)

	var nav dto.NavigationResponse
	status := call(t, app, http.MethodGet, "/api/navigation", token, nil, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", nav.Status)

	status = call(t, app, http.MethodPost, "/api/navigation/start", token, dto.StartNavigationRequest{
		ProductID: productID, AttendanceType: "receptivo", PersonType: "fisica",
	}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "active", nav.Status)
	require.NotNil(t, nav.CurrentStep)
	assert.Equal(t, "inicio", nav.CurrentStep.ID)
	assert.Equal(t, []string{"inicio"}, nav.History)
	assert.False(t, nav.CanGoBack)

	// Back con un solo paso no hace nada
	status = call(t, app, http.MethodPost, "/api/navigation/back", token, nil, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "inicio", nav.CurrentStep.ID)

	status = call(t, app, http.MethodPost, "/api/navigation/select", token, dto.SelectButtonRequest{ButtonID: "seguir"}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "moved", nav.Outcome)
	assert.Equal(t, "datos", nav.CurrentStep.ID)
	assert.Equal(t, []string{"inicio", "datos"}, nav.History)
	assert.True(t, nav.CanGoBack)

	status = call(t, app, http.MethodPost, "/api/navigation/back", token, nil, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "inicio", nav.CurrentStep.ID)
	assert.Equal(t, []string{"inicio"}, nav.History)

	// Búsqueda sin acentos ni mayúsculas
	status = call(t, app, http.MethodPost, "/api/navigation/search", token, dto.SearchStepRequest{Query: "confirmacion"}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "datos", nav.CurrentStep.ID)
	assert.Equal(t, []string{"inicio", "datos"}, nav.History)

	status = call(t, app, http.MethodPost, "/api/navigation/select", token, dto.SelectButtonRequest{ButtonID: "fin"}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cierre", nav.CurrentStep.ID)

	// Botón sin destino termina la atención
	status = call(t, app, http.MethodPost, "/api/navigation/select", token, dto.SelectButtonRequest{ButtonID: "terminar"}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ended", nav.Outcome)
	assert.Equal(t, "idle", nav.Status)
	assert.Empty(t, nav.History)

	var errResp dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/navigation/back", token, nil, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NO_ACTIVE_SESSION", errResp.Code)
}

func TestRouter_DestinoInexistenteNoCambiaLaSesion(t *testing.T) {
	app := newTestApp(t)
	_, token := setupCompany(t, app)
	productID := setupScript(t, app, token)

	var nav dto.NavigationResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/navigation/start", token,
		dto.StartNavigationRequest{ProductID: productID}, &nav))

	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/navigation/select", token, dto.SelectButtonRequest{ButtonID: "roto"}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DANGLING_REFERENCE", errResp.Code)

	status = call(t, app, http.MethodGet, "/api/navigation", token, nil, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "active", nav.Status)
	assert.Equal(t, "inicio", nav.CurrentStep.ID)
	assert.Equal(t, []string{"inicio"}, nav.History)

	// El lint del producto reporta el mismo botón
	var report map[string]any
	status = call(t, app, http.MethodGet, "/api/products/"+productID+"/steps/lint", token, nil, &report)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "inicio", report["entry_step_id"])
	assert.Len(t, report["dangling"], 1)
}

func TestRouter_ErroresDeNavegacion(t *testing.T) {
	app := newTestApp(t)
	_, token := setupCompany(t, app)
	setupScript(t, app, token)

	tests := []struct {
		name     string
		path     string
		body     any
		wantCode int
		wantErr  string
	}{
		{"producto inexistente", "/api/navigation/start", dto.StartNavigationRequest{ProductID: "no-existe"}, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"sin product_id", "/api/navigation/start", dto.StartNavigationRequest{}, http.StatusBadRequest, "VALIDATION"},
		{"select sin sesión", "/api/navigation/select", dto.SelectButtonRequest{ButtonID: "seguir"}, http.StatusConflict, "NO_ACTIVE_SESSION"},
		{"search sin sesión", "/api/navigation/search", dto.SearchStepRequest{Query: "saludo"}, http.StatusConflict, "NO_ACTIVE_SESSION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			status := call(t, app, http.MethodPost, tt.path, token, tt.body, &errResp)
			assert.Equal(t, tt.wantCode, status)
			assert.Equal(t, tt.wantErr, errResp.Code)
		})
	}
}

func TestRouter_OperadorNoAdministraProductos(t *testing.T) {
	app := newTestApp(t)
	companyID, adminToken := setupCompany(t, app)
	productID := setupScript(t, app, adminToken)

	status := call(t, app, http.MethodPost, "/api/operators", adminToken, dto.CreateOperatorRequest{
		Username: "ana", Password: "clave-segura", Name: "Ana", Role: "operador",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login dto.LoginResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		CompanyID: companyID, Username: "ana", Password: "clave-segura",
	}, &login))
	token := login.Token

	var errResp dto.ErrorResponse
	status = call(t, app, http.MethodPost, "/api/products", token, dto.CreateProductRequest{Name: "Otro"}, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errResp.Code)

	status = call(t, app, http.MethodDelete, "/api/products/"+productID, token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = call(t, app, http.MethodGet, "/api/operators", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Navegar sí puede, y su sesión es independiente de la del admin
	var nav dto.NavigationResponse
	status = call(t, app, http.MethodPost, "/api/navigation/start", token, dto.StartNavigationRequest{ProductID: productID}, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "inicio", nav.CurrentStep.ID)

	status = call(t, app, http.MethodGet, "/api/navigation", adminToken, nil, &nav)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "idle", nav.Status)
}

func TestRouter_LoginYRecursosInexistentes(t *testing.T) {
	app := newTestApp(t)
	companyID, token := setupCompany(t, app)

	var errResp dto.ErrorResponse
	status := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		CompanyID: companyID, Username: "admin", Password: "incorrecta",
	}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = call(t, app, http.MethodPost, "/api/companies", "", dto.CreateCompanyRequest{Name: "Otra", NIT: "900123456"}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errResp.Code)

	status = call(t, app, http.MethodGet, "/api/products/no-existe", token, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)

	status = call(t, app, http.MethodGet, "/api/products/no-existe/steps", token, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errResp.Code)

	status = call(t, app, http.MethodGet, "/api/navigation", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// Sin almacén local configurado la migración no está disponible
	status = call(t, app, http.MethodPost, "/api/admin/migration", token, nil, &errResp)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "MIGRATION_UNAVAILABLE", errResp.Code)
}

func TestRouter_ModuloDesactivadoBloqueaNotas(t *testing.T) {
	app := newTestApp(t)
	_, token := setupCompany(t, app)

	status := call(t, app, http.MethodPost, "/api/notes", token, map[string]string{"title": "Recordatorio", "content": "llamar"}, nil)
	require.Equal(t, http.StatusCreated, status)

	status = call(t, app, http.MethodPut, "/api/settings/modules/notes", token, dto.SetModuleRequest{IsActive: false}, nil)
	require.Equal(t, http.StatusOK, status)

	status = call(t, app, http.MethodGet, "/api/notes", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRouter_PaginacionDeListados(t *testing.T) {
	app := newTestApp(t)
	_, token := setupCompany(t, app)

	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 20, 0},
		{"?limit=500&offset=-3", 100, 0},
		{"?limit=5&offset=10", 5, 10},
		{"?limit=abc", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var list dto.TabulationListResponse
			status := call(t, app, http.MethodGet, "/api/tabulations"+tt.query, token, nil, &list)
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.wantLimit, list.Page.Limit)
			assert.Equal(t, tt.wantOffset, list.Page.Offset)
		})
	}
}
