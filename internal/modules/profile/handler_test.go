package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"freelahub/internal/database"
	"freelahub/internal/domain"
	"freelahub/internal/middleware"
	"freelahub/internal/pkg/jwt"
	"freelahub/internal/repository"
)

type testEnv struct {
	db     *gorm.DB
	jwt    *jwt.Service
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	jwtSvc := jwt.New("test-secret", time.Hour)
	svc := NewService(repository.NewUserRepository(db), repository.NewProfileRepository(db))

	r := gin.New()
	protected := r.Group("/api/v1", middleware.JWTAuth(jwtSvc))
	NewHandler(svc).RegisterRoutes(protected)

	return &testEnv{db: db, jwt: jwtSvc, router: r}
}

// signup creates an account with the placeholder profile and returns its token.
func (e *testEnv) signup(t *testing.T, email string, role domain.Role) (int64, string) {
	t.Helper()
	u := &domain.User{Email: email, Name: "Teste", PasswordHash: "x", Role: role}
	p, err := domain.NewRoleProfile(role, 50)
	require.NoError(t, err)
	require.NoError(t, repository.NewUserRepository(e.db).CreateWithProfile(context.Background(), u, p))

	token, err := e.jwt.GenerateToken(u.ID, string(role))
	require.NoError(t, err)
	return u.ID, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func (e *testEnv) isComplete(t *testing.T, token string) bool {
	t.Helper()
	code, body := e.do(t, http.MethodGet, "/api/v1/profile/check-completion", token, nil)
	require.Equal(t, http.StatusOK, code)
	return body["data"].(map[string]any)["isComplete"].(bool)
}

func freelancerForm(cpf string) map[string]any {
	return map[string]any{
		"cpf":         cpf,
		"profissao":   "Desenvolvedor",
		"experiencia": "5 anos",
		"valor_hora":  95.5,
		"habilidades": []string{"Go", "PostgreSQL"},
		"cidade":      "Recife",
		"bairro":      "Boa Viagem",
	}
}

func companyForm(cnpj string) map[string]any {
	return map[string]any{
		"cnpj":         cnpj,
		"razao_social": "ACME Tecnologia Ltda",
		"setor":        "Tecnologia",
		"cidade":       "São Paulo",
		"bairro":       "Pinheiros",
	}
}

func TestCompletion_FreelancerLifecycle(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "dev@example.com", domain.RoleFreelancer)

	assert.False(t, env.isComplete(t, token))

	code, body := env.do(t, http.MethodPost, "/api/v1/profile/complete-freelancer", token, freelancerForm("529.982.247-25"))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, completedMessage, body["data"].(map[string]any)["message"])

	assert.True(t, env.isComplete(t, token))

	var stored domain.FreelancerProfile
	require.NoError(t, env.db.Where("user_id = ?", userID).First(&stored).Error)
	assert.Equal(t, "52998224725", stored.CPF)
	assert.Equal(t, domain.SkillList{"Go", "PostgreSQL"}, stored.Skills)

	var user domain.User
	require.NoError(t, env.db.First(&user, userID).Error)
	assert.Equal(t, "Recife", user.City)
	assert.Equal(t, "Boa Viagem", user.Neighborhood)
}

func TestCompletion_CompanyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "acme@example.com", domain.RoleCompany)

	assert.False(t, env.isComplete(t, token))

	code, _ := env.do(t, http.MethodPost, "/api/v1/profile/complete-empresa", token, companyForm("11.222.333/0001-81"))
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.isComplete(t, token))

	code, body := env.do(t, http.MethodGet, "/api/v1/profile/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["isComplete"])
	assert.Equal(t, "11222333000181", data["perfil"].(map[string]any)["cnpj"])
	assert.Equal(t, "São Paulo", data["user"].(map[string]any)["cidade"])
}

func TestCompletion_BadChecksumIsRejectedBeforePersisting(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "acme@example.com", domain.RoleCompany)

	code, body := env.do(t, http.MethodPost, "/api/v1/profile/complete-empresa", token, companyForm("11.222.333/0001-82"))
	require.Equal(t, http.StatusBadRequest, code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, "invalid CNPJ", errBody["details"].(map[string]any)["cnpj"])

	var stored domain.CompanyProfile
	require.NoError(t, env.db.Where("user_id = ?", userID).First(&stored).Error)
	assert.Empty(t, stored.CNPJ)
	assert.False(t, env.isComplete(t, token))
}

func TestCompletion_RoleMismatch(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "dev@example.com", domain.RoleFreelancer)

	code, body := env.do(t, http.MethodPost, "/api/v1/profile/complete-empresa", token, companyForm("11222333000181"))
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "ROLE_MISMATCH", body["error"].(map[string]any)["code"])
}

func TestCompletion_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodGet, "/api/v1/profile/check-completion", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = env.do(t, http.MethodPost, "/api/v1/profile/complete-freelancer", "", freelancerForm("52998224725"))
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCompletion_EmptySkills(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signup(t, "dev@example.com", domain.RoleFreelancer)

	form := freelancerForm("52998224725")
	form["habilidades"] = []string{}
	code, body := env.do(t, http.MethodPost, "/api/v1/profile/complete-freelancer", token, form)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"].(map[string]any)["details"], "habilidades")
}

func TestIsComplete_RevalidatesStoredIdentifier(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "dev@example.com", domain.RoleFreelancer)

	// a row written before checksum validation existed
	require.NoError(t, env.db.Model(&domain.FreelancerProfile{}).
		Where("user_id = ?", userID).
		Update("cpf", "11111111111").Error)

	assert.False(t, env.isComplete(t, token))
}

func TestIsComplete_OrphanUserIsIncomplete(t *testing.T) {
	env := newTestEnv(t)
	u := &domain.User{Email: "orphan@example.com", Name: "O", PasswordHash: "x", Role: domain.RoleCompany}
	require.NoError(t, env.db.Create(u).Error)

	svc := NewService(repository.NewUserRepository(env.db), repository.NewProfileRepository(env.db))
	complete, err := svc.IsComplete(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, complete)

	_, err = svc.GetMine(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
