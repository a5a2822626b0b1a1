package repository

import (
	"testing"

	"vigil/internal/domain"
	"vigil/internal/models"
)

func TestAdminIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	admin := models.User{CompanyID: 1, Email: "a@example.com", Username: "a", Role: domain.RoleAdmin}
	guard := models.User{CompanyID: 1, Email: "g@example.com", Username: "g", Role: domain.RoleGuard}
	otherAdmin := models.User{CompanyID: 2, Email: "b@example.com", Username: "b", Role: domain.RoleAdmin}
	for _, u := range []*models.User{&admin, &guard, &otherAdmin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	ids, err := repo.AdminIDs(1)
	if err != nil {
		t.Fatalf("AdminIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != admin.ID {
		t.Fatalf("expected only company 1's admin, got %v", ids)
	}
}
