package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"vigil/internal/domain"
	"vigil/internal/models"
)

type notificationStore interface {
	Create(*models.Notification) error
}

type tokenSource interface {
	ListByUserID(userID uint) ([]models.DeviceToken, error)
}

type adminDirectory interface {
	AdminIDs(companyID uint) ([]uint, error)
}

type pusher interface {
	SendToToken(ctx context.Context, token, notifType, title, body string, data map[string]interface{}) error
}

// NotificationService records notifications and pushes them to every device
// token the recipient has registered. The database write is the only failure
// that reaches the caller; push delivery is best effort.
type NotificationService struct {
	store  notificationStore
	tokens tokenSource
	admins adminDirectory
	push   pusher
}

func NewNotificationService(store notificationStore, tokens tokenSource, admins adminDirectory, push pusher) *NotificationService {
	return &NotificationService{store: store, tokens: tokens, admins: admins, push: push}
}

func (s *NotificationService) Dispatch(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.store.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.push == nil || s.tokens == nil {
		return
	}
	tokens, err := s.tokens.ListByUserID(userID)
	if err != nil {
		log.Printf("[notify] token lookup for user %d: %v", userID, err)
		return
	}
	for _, t := range tokens {
		if err := s.push.SendToToken(context.Background(), t.Token, notifType, title, body, data); err != nil {
			log.Printf("[notify] push to device %s: %v", t.DeviceID, err)
		}
	}
}

// DispatchToAdmins fans one notification out to every admin of a company.
func (s *NotificationService) DispatchToAdmins(companyID uint, notifType, title, body string, data map[string]interface{}) error {
	ids, err := s.admins.AdminIDs(companyID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.Dispatch(id, notifType, title, body, data); err != nil {
			log.Printf("[notify] admin %d: %v", id, err)
		}
	}
	return nil
}

// GeofenceTransition alerts company admins when a guard crosses a site boundary.
func (s *NotificationService) GeofenceTransition(guardName string, site *models.Site, eventType string) {
	verb := "entered"
	if eventType == domain.GeofenceExit {
		verb = "left"
	}
	_ = s.DispatchToAdmins(site.CompanyID, domain.NotifSystem,
		"Geofence "+eventType,
		fmt.Sprintf("%s %s %s", guardName, verb, site.Name),
		map[string]interface{}{"site_id": site.ID, "event_type": eventType})
}

func (s *NotificationService) IncidentAlert(companyID uint, incidentID uint, severity, title string) {
	_ = s.DispatchToAdmins(companyID, domain.NotifIncidentAlert,
		"Incident reported",
		fmt.Sprintf("[%s] %s", severity, title),
		map[string]interface{}{"incident_id": incidentID, "severity": severity})
}

func (s *NotificationService) EmergencyAlert(companyID uint, guardName string, lat, lng float64) {
	_ = s.DispatchToAdmins(companyID, domain.NotifEmergency,
		"Emergency alert",
		guardName+" triggered an emergency alert",
		map[string]interface{}{"latitude": lat, "longitude": lng})
}

func (s *NotificationService) ShiftReminder(userID uint, shiftID uint, siteName string, startsIn string) error {
	return s.Dispatch(userID, domain.NotifShiftReminder,
		"Upcoming shift",
		"Your shift at "+siteName+" starts in "+startsIn,
		map[string]interface{}{"shift_id": shiftID})
}
