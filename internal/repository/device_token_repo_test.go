package repository

import (
	"testing"

	"vigil/internal/domain"
	"vigil/internal/models"
)

func TestDeviceTokenUpsert_ReplacesSameDevice(t *testing.T) {
	repo := NewDeviceTokenRepository(newTestDB(t))

	if err := repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-a", Platform: domain.PlatformIOS, DeviceID: "phone"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-b", Platform: domain.PlatformIOS, DeviceID: "phone"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	list, err := repo.ListByUserID(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 row for the device, got %d", len(list))
	}
	if list[0].Token != "tok-b" {
		t.Errorf("token = %q, want the replacement tok-b", list[0].Token)
	}
}

func TestDeviceToken_ReRegisterAfterUnregister(t *testing.T) {
	repo := NewDeviceTokenRepository(newTestDB(t))

	if err := repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-a", Platform: domain.PlatformAndroid, DeviceID: "phone"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repo.DeleteByDeviceID(1, "phone"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if list, _ := repo.ListByUserID(1); len(list) != 0 {
		t.Fatalf("unregistered device still listed: %+v", list)
	}

	// Logging back in on the same device must make it pushable again.
	if err := repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-b", Platform: domain.PlatformAndroid, DeviceID: "phone"}); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	list, err := repo.ListByUserID(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Token != "tok-b" {
		t.Fatalf("re-registered device must be listed with the new token, got %+v", list)
	}
}

func TestDeviceToken_SeveralDevicesPerUser(t *testing.T) {
	repo := NewDeviceTokenRepository(newTestDB(t))

	repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-a", Platform: domain.PlatformIOS, DeviceID: "phone"})
	repo.Upsert(&models.DeviceToken{UserID: 1, Token: "tok-b", Platform: domain.PlatformAndroid, DeviceID: "tablet"})

	list, err := repo.ListByUserID(1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(list))
	}
}
