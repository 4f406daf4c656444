package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/app"
	"github.com/talentnest247/Talentnest-sub001/internal/config"
	"github.com/talentnest247/Talentnest-sub001/internal/infrastructure/database"
)

const adminPassword = "admin-password"

var projectRoot = filepath.Join("..", "..", "..")

// TestApp is the fully wired service running over sqlite, miniredis and the memory store
type TestApp struct {
	t         *testing.T
	Container *app.Container
	Server    *httptest.Server
	Redis     *miniredis.Miniredis
}

// newTestApp loads the shipped configuration files and swaps the backing
// services for in-process ones
func newTestApp(t *testing.T) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("TALENTNEST_CONFIG", filepath.Join(projectRoot, "config", "config.yml"))
	t.Setenv("TALENTNEST_OWNERSHIP_RULES", filepath.Join(projectRoot, "config", "ownership_rules.yml"))
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("NATS_URL", "")
	t.Setenv("TWILIO_FROM_NUMBER", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.CasbinModelPath = filepath.Join(projectRoot, "casbin", "model.conf")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log, _ := test.NewNullLogger()
	c, err := app.NewContainerWith(cfg, log, db, rdb)
	require.NoError(t, err)
	require.NoError(t, c.SeedPolicies())

	srv := httptest.NewServer(c.Router())
	t.Cleanup(func() {
		srv.Close()
		c.Close()
	})

	return &TestApp{t: t, Container: c, Server: srv, Redis: mr}
}

// Response is a decoded API response
type Response struct {
	Status int
	Raw    []byte
}

// Object decodes the body as a JSON object
func (r Response) Object(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Raw, &out), string(r.Raw))
	return out
}

// Data returns the "data" member of an enveloped response
func (r Response) Data(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.Object(t)["data"].(map[string]interface{})
	require.True(t, ok, string(r.Raw))
	return data
}

// Decode unmarshals the body into v
func (r Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Raw, v), string(r.Raw))
}

func (a *TestApp) send(req *http.Request, token string) Response {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.Server.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return Response{Status: resp.StatusCode, Raw: raw}
}

// Do sends a JSON request, authenticated when token is set
func (a *TestApp) Do(method, path, token string, body interface{}) Response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.Server.URL+path, &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

// Upload posts a multipart file
func (a *TestApp) Upload(token, fileName, contentType string, content []byte) Response {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(a.t, err)
	_, err = part.Write(content)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, a.Server.URL+"/upload", &buf)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.send(req, token)
}

// Login returns an access token
func (a *TestApp) Login(email, password string) string {
	a.t.Helper()
	resp := a.Do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, resp.Status, string(resp.Raw))
	token, ok := resp.Data(a.t)["access_token"].(string)
	require.True(a.t, ok)
	return token
}

// SeedAdmin stores an administrator directly and logs in
func (a *TestApp) SeedAdmin() (*domain.User, string) {
	a.t.Helper()
	hash, err := a.Container.PasswordSvc.Hash(adminPassword)
	require.NoError(a.t, err)
	admin := &domain.User{
		Email:        "admin@talentnest.test",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FullName:     "Admin",
		IsActive:     true,
		IsVerified:   true,
	}
	require.NoError(a.t, a.Container.UserRepo.Create(context.Background(), admin))
	return admin, a.Login(admin.Email, adminPassword)
}

// Artisan is a registered, logged-in artisan with a pending profile
type Artisan struct {
	UserID    uint
	ProfileID uint
	Token     string
}

// RegisterArtisan registers an artisan through the API and logs in
func (a *TestApp) RegisterArtisan(email, businessName string) Artisan {
	a.t.Helper()
	resp := a.Do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":         email,
		"password":      "password123",
		"full_name":     "Artisan " + businessName,
		"phone":         "+2348000000003",
		"matric_number": "CSC/2021/003",
		"role":          "artisan",
		"business_name": businessName,
	})
	require.Equal(a.t, http.StatusCreated, resp.Status, string(resp.Raw))
	userID := uint(resp.Data(a.t)["user"].(map[string]interface{})["id"].(float64))

	profile, err := a.Container.ProfileRepo.FindByUserID(context.Background(), userID)
	require.NoError(a.t, err)

	return Artisan{UserID: userID, ProfileID: profile.ID, Token: a.Login(email, "password123")}
}

// RegisterStudent registers a student through the API and logs in
func (a *TestApp) RegisterStudent(email string) (uint, string) {
	a.t.Helper()
	resp := a.Do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":         email,
		"password":      "password123",
		"full_name":     "Student",
		"matric_number": "CSC/2022/001",
		"role":          "student",
	})
	require.Equal(a.t, http.StatusCreated, resp.Status, string(resp.Raw))
	userID := uint(resp.Data(a.t)["user"].(map[string]interface{})["id"].(float64))
	return userID, a.Login(email, "password123")
}

// Profile reloads a provider profile from the repository
func (a *TestApp) Profile(id uint) *domain.ProviderProfile {
	a.t.Helper()
	p, err := a.Container.ProfileRepo.FindByID(context.Background(), id)
	require.NoError(a.t, err)
	return p
}

// User reloads a user from the repository
func (a *TestApp) User(id uint) *domain.User {
	a.t.Helper()
	u, err := a.Container.UserRepo.FindByID(context.Background(), id)
	require.NoError(a.t, err)
	return u
}

// pngBytes is a minimal PNG header, enough for content sniffing
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
