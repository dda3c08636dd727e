package repository

import (
	"testing"
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupLoginSessionRepositoryTest(t *testing.T) (*GormLoginSessionRepository, *GormUserRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.WebsiteLoginSession{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewLoginSessionRepository(db), NewUserRepository(db), db
}

func createPendingSession(t *testing.T, repo *GormLoginSessionRepository, token string, expiresAt time.Time) *models.WebsiteLoginSession {
	t.Helper()
	session := &models.WebsiteLoginSession{
		TempToken: token,
		ClientID:  "jamolstroy_admin_123",
		Status:    constants.LoginStatusPending,
		ExpiresAt: expiresAt,
	}
	if err := repo.Create(session); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	return session
}

func createAdminUser(t *testing.T, users *GormUserRepository, telegramID string) *models.User {
	t.Helper()
	user := &models.User{
		TelegramID: &telegramID,
		FirstName:  "Jamol",
		Role:       constants.RoleAdmin,
	}
	if err := users.Create(user); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return user
}

func TestMarkApprovedBindsUserOnce(t *testing.T) {
	repo, users, _ := setupLoginSessionRepositoryTest(t)
	admin := createAdminUser(t, users, "777000")
	createPendingSession(t, repo, "tok-approve", time.Now().Add(5*time.Minute))

	approvedAt := time.Now()
	ok, err := repo.MarkApproved("tok-approve", admin.ID, "777000", approvedAt)
	if err != nil {
		t.Fatalf("mark approved failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected first approval to apply")
	}

	session, err := repo.GetApprovedByToken("tok-approve")
	if err != nil {
		t.Fatalf("get approved failed: %v", err)
	}
	if session == nil {
		t.Fatalf("expected approved session")
	}
	if session.UserID == nil || *session.UserID != admin.ID {
		t.Fatalf("expected session bound to admin, got %v", session.UserID)
	}
	if session.User == nil || session.User.ID != admin.ID {
		t.Fatalf("expected preloaded user")
	}

	// A second decision must not overwrite the first one.
	ok, err = repo.MarkDecided("tok-approve", constants.LoginStatusRejected, "999")
	if err != nil {
		t.Fatalf("mark decided failed: %v", err)
	}
	if ok {
		t.Fatalf("expected second transition to be a no-op")
	}
	session, err = repo.GetByToken("tok-approve")
	if err != nil {
		t.Fatalf("get by token failed: %v", err)
	}
	if session.Status != constants.LoginStatusApproved {
		t.Fatalf("status changed after terminal state: %s", session.Status)
	}
}

func TestMarkDecidedRejectsPendingOnly(t *testing.T) {
	repo, _, _ := setupLoginSessionRepositoryTest(t)
	createPendingSession(t, repo, "tok-reject", time.Now().Add(5*time.Minute))

	ok, err := repo.MarkDecided("tok-reject", constants.LoginStatusRejected, "555")
	if err != nil {
		t.Fatalf("mark decided failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected rejection to apply")
	}

	session, err := repo.GetApprovedByToken("tok-reject")
	if err != nil {
		t.Fatalf("get approved failed: %v", err)
	}
	if session != nil {
		t.Fatalf("rejected session must not read back as approved")
	}
}

func TestExpireDueFlipsOnlyOverduePending(t *testing.T) {
	repo, _, _ := setupLoginSessionRepositoryTest(t)
	now := time.Now()
	createPendingSession(t, repo, "tok-overdue", now.Add(-time.Minute))
	createPendingSession(t, repo, "tok-fresh", now.Add(5*time.Minute))
	createPendingSession(t, repo, "tok-decided", now.Add(-time.Minute))
	if _, err := repo.MarkDecided("tok-decided", constants.LoginStatusRejected, ""); err != nil {
		t.Fatalf("mark decided failed: %v", err)
	}

	count, err := repo.ExpireDue(now)
	if err != nil {
		t.Fatalf("expire due failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 expired session, got %d", count)
	}

	overdue, _ := repo.GetByToken("tok-overdue")
	if overdue.Status != constants.LoginStatusExpired {
		t.Fatalf("overdue session status = %s", overdue.Status)
	}
	fresh, _ := repo.GetByToken("tok-fresh")
	if fresh.Status != constants.LoginStatusPending {
		t.Fatalf("fresh session status = %s", fresh.Status)
	}
	decided, _ := repo.GetByToken("tok-decided")
	if decided.Status != constants.LoginStatusRejected {
		t.Fatalf("decided session status = %s", decided.Status)
	}
}

func TestPurgeBeforeDeletesOldRows(t *testing.T) {
	repo, _, db := setupLoginSessionRepositoryTest(t)
	old := createPendingSession(t, repo, "tok-old", time.Now().Add(-time.Hour))
	if err := db.Model(&models.WebsiteLoginSession{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("backdate session failed: %v", err)
	}
	createPendingSession(t, repo, "tok-new", time.Now().Add(time.Hour))

	count, err := repo.PurgeBefore(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 purged session, got %d", count)
	}
	remaining, err := repo.GetByToken("tok-new")
	if err != nil || remaining == nil {
		t.Fatalf("expected fresh session to survive purge")
	}
}
