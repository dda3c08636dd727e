package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/queue"
	"github.com/jamolstroy/admin-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testBotToken = "12345:test-bot-token"

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.WebsiteLoginSession{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:   "test-secret",
			ExpireHours: 24,
		},
		TelegramAuth: config.TelegramAuthConfig{
			Enabled:            true,
			BotUsername:        "jamolstroy_bot",
			BotToken:           testBotToken,
			LoginExpireSeconds: 300,
			ReplayTTLSeconds:   300,
		},
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}

	svc := NewAuthService(cfg,
		repository.NewUserRepository(db),
		repository.NewLoginSessionRepository(db),
		queueClient,
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, telegramID, role string) *models.User {
	t.Helper()
	user := &models.User{
		TelegramID: &telegramID,
		FirstName:  "Jamol",
		LastName:   "Usmonov",
		Username:   "jamol",
		Role:       role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestRequestWebsiteLoginCreatesPendingSession(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	req, err := svc.RequestWebsiteLogin("jamolstroy_admin_1724999999")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}
	if req.TempToken == "" {
		t.Fatalf("expected temp token")
	}
	wantURL := "https://t.me/jamolstroy_bot?start=" + req.TempToken
	if req.TelegramURL != wantURL {
		t.Fatalf("telegram url = %s, expected %s", req.TelegramURL, wantURL)
	}
	if !req.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", req.ExpiresAt)
	}

	var session models.WebsiteLoginSession
	if err := db.Where("temp_token = ?", req.TempToken).First(&session).Error; err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.Status != constants.LoginStatusPending {
		t.Fatalf("session status = %s", session.Status)
	}
	if session.ClientID != "jamolstroy_admin_1724999999" {
		t.Fatalf("client id = %s", session.ClientID)
	}
}

func TestRequestWebsiteLoginDisabled(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	svc.cfg.TelegramAuth.Enabled = false

	if _, err := svc.RequestWebsiteLogin("client"); !errors.Is(err, ErrTelegramLoginDisabled) {
		t.Fatalf("expected ErrTelegramLoginDisabled, got %v", err)
	}
}

func TestApproveByAdminYieldsUsableLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := seedUser(t, db, "777000", constants.RoleAdmin)
	ctx := context.Background()

	req, err := svc.RequestWebsiteLogin("client-1")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}

	if err := svc.ApproveWebsiteLogin(ctx, req.TempToken, "777000"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	user, err := svc.CheckWebsiteLoginStatus(ctx, req.TempToken)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if user == nil || user.ID != admin.ID {
		t.Fatalf("expected gate to return admin, got %+v", user)
	}

	status, err := svc.LoginStatus(ctx, req.TempToken)
	if err != nil {
		t.Fatalf("login status failed: %v", err)
	}
	if status.Status != constants.LoginStatusApproved {
		t.Fatalf("status = %s", status.Status)
	}
	if status.User == nil || status.User.ID != admin.ID {
		t.Fatalf("expected user in approved status")
	}
	if status.Token == "" {
		t.Fatalf("expected token in approved status")
	}

	claims, err := svc.ParseJWT(status.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != admin.ID || claims.Role != constants.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestApproveByNonAdminBurnsSession(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedUser(t, db, "555111", constants.RoleCustomer)
	ctx := context.Background()

	req, err := svc.RequestWebsiteLogin("client-2")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}

	if err := svc.ApproveWebsiteLogin(ctx, req.TempToken, "555111"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	status, err := svc.LoginStatus(ctx, req.TempToken)
	if err != nil {
		t.Fatalf("login status failed: %v", err)
	}
	if status.Status != constants.LoginStatusUnauthorized {
		t.Fatalf("status = %s, expected unauthorized", status.Status)
	}

	// The burned session must stay terminal even for a real admin.
	seedUser(t, db, "777000", constants.RoleAdmin)
	if err := svc.ApproveWebsiteLogin(ctx, req.TempToken, "777000"); !errors.Is(err, ErrLoginAlreadyDecided) {
		t.Fatalf("expected ErrLoginAlreadyDecided, got %v", err)
	}
}

func TestRejectWebsiteLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedUser(t, db, "777000", constants.RoleAdmin)
	ctx := context.Background()

	req, err := svc.RequestWebsiteLogin("client-3")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}
	if err := svc.RejectWebsiteLogin(ctx, req.TempToken, "777000"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	status, err := svc.LoginStatus(ctx, req.TempToken)
	if err != nil {
		t.Fatalf("login status failed: %v", err)
	}
	if status.Status != constants.LoginStatusRejected {
		t.Fatalf("status = %s, expected rejected", status.Status)
	}
	if user, _ := svc.CheckWebsiteLoginStatus(ctx, req.TempToken); user != nil {
		t.Fatalf("gate must return nil for rejected session")
	}
}

func TestLoginStatusReportsOverduePendingAsExpired(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	ctx := context.Background()

	req, err := svc.RequestWebsiteLogin("client-4")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}
	if err := db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ?", req.TempToken).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}

	status, err := svc.LoginStatus(ctx, req.TempToken)
	if err != nil {
		t.Fatalf("login status failed: %v", err)
	}
	if status.Status != constants.LoginStatusExpired {
		t.Fatalf("status = %s, expected expired", status.Status)
	}

	// Approving an overdue session must fail and burn it.
	seedUser(t, db, "777000", constants.RoleAdmin)
	if err := svc.ApproveWebsiteLogin(ctx, req.TempToken, "777000"); !errors.Is(err, ErrLoginSessionExpired) {
		t.Fatalf("expected ErrLoginSessionExpired, got %v", err)
	}
}

func TestCheckWebsiteLoginStatusGate(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := seedUser(t, db, "777000", constants.RoleAdmin)
	ctx := context.Background()

	if user, err := svc.CheckWebsiteLoginStatus(ctx, "missing-token"); err != nil || user != nil {
		t.Fatalf("unknown token: user=%v err=%v, expected nil,nil", user, err)
	}

	req, err := svc.RequestWebsiteLogin("client-5")
	if err != nil {
		t.Fatalf("request login failed: %v", err)
	}
	if user, err := svc.CheckWebsiteLoginStatus(ctx, req.TempToken); err != nil || user != nil {
		t.Fatalf("pending session: user=%v err=%v, expected nil,nil", user, err)
	}

	if err := svc.ApproveWebsiteLogin(ctx, req.TempToken, "777000"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Expired approval gates to nil.
	if err := db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ?", req.TempToken).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}
	if user, err := svc.CheckWebsiteLoginStatus(ctx, req.TempToken); err != nil || user != nil {
		t.Fatalf("expired approval: user=%v err=%v, expected nil,nil", user, err)
	}
	if err := db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ?", req.TempToken).
		Update("expires_at", time.Now().Add(time.Hour)).Error; err != nil {
		t.Fatalf("restore expiry failed: %v", err)
	}

	// A role downgrade after approval closes the gate too.
	if err := db.Model(&models.User{}).Where("id = ?", admin.ID).
		Update("role", constants.RoleCustomer).Error; err != nil {
		t.Fatalf("downgrade role failed: %v", err)
	}
	if user, err := svc.CheckWebsiteLoginStatus(ctx, req.TempToken); err != nil || user != nil {
		t.Fatalf("downgraded role: user=%v err=%v, expected nil,nil", user, err)
	}
}

// signInitData builds a WebApp initData string signed with the given
// bot token.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+fields[key])
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(dataCheckString))
	hash := hex.EncodeToString(mac.Sum(nil))

	query := url.Values{}
	for key, value := range fields {
		query.Set(key, value)
	}
	query.Set("hash", hash)
	return query.Encode()
}

func freshInitData(t *testing.T, botToken string, telegramID int64) string {
	t.Helper()
	userJSON := fmt.Sprintf(`{"id":%d,"first_name":"Yangi","last_name":"Ism","username":"yangi_admin"}`, telegramID)
	return signInitData(t, botToken, map[string]string{
		"query_id":  "AAE-test",
		"user":      userJSON,
		"auth_date": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

func TestLoginWithWebAppSuccessRefreshesProfile(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := seedUser(t, db, "777000", constants.RoleAdmin)
	ctx := context.Background()

	user, token, expiresAt, err := svc.LoginWithWebApp(ctx, freshInitData(t, testBotToken, 777000))
	if err != nil {
		t.Fatalf("webapp login failed: %v", err)
	}
	if user.ID != admin.ID {
		t.Fatalf("unexpected user: %s", user.ID)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("expected usable token")
	}
	if user.FirstName != "Yangi" || user.Username != "yangi_admin" {
		t.Fatalf("profile not refreshed: %+v", user)
	}

	var stored models.User
	if err := db.Where("id = ?", admin.ID).First(&stored).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.FirstName != "Yangi" {
		t.Fatalf("stored profile not refreshed: %s", stored.FirstName)
	}
	if stored.Role != constants.RoleAdmin {
		t.Fatalf("role must never change on login, got %s", stored.Role)
	}
}

func TestLoginWithWebAppRejectsTamperedPayload(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedUser(t, db, "777000", constants.RoleAdmin)

	initData := freshInitData(t, "999:wrong-token", 777000)
	if _, _, _, err := svc.LoginWithWebApp(context.Background(), initData); !errors.Is(err, ErrTelegramAuthFailed) {
		t.Fatalf("expected ErrTelegramAuthFailed, got %v", err)
	}
}

func TestLoginWithWebAppRejectsStaleAuthDate(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedUser(t, db, "777000", constants.RoleAdmin)

	initData := signInitData(t, testBotToken, map[string]string{
		"user":      `{"id":777000,"first_name":"Jamol"}`,
		"auth_date": fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix()),
	})
	if _, _, _, err := svc.LoginWithWebApp(context.Background(), initData); !errors.Is(err, ErrTelegramAuthFailed) {
		t.Fatalf("expected ErrTelegramAuthFailed, got %v", err)
	}
}

func TestLoginWithWebAppNeverCreatesAccounts(t *testing.T) {
	svc, db := setupAuthServiceTest(t)

	if _, _, _, err := svc.LoginWithWebApp(context.Background(), freshInitData(t, testBotToken, 424242)); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("login must not create users, found %d", count)
	}
}

func TestLoginWithWebAppRejectsCustomers(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	customer := seedUser(t, db, "555111", constants.RoleCustomer)

	if _, _, _, err := svc.LoginWithWebApp(context.Background(), freshInitData(t, testBotToken, 555111)); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	var stored models.User
	if err := db.Where("id = ?", customer.ID).First(&stored).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if stored.Role != constants.RoleCustomer {
		t.Fatalf("customer role changed: %s", stored.Role)
	}
}
