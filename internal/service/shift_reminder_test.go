package service

import (
	"testing"
	"time"

	"vigil/internal/models"
)

type fakeReminderSource struct {
	due      []models.Shift
	err      error
	reminded []uint
	markErr  error
}

func (f *fakeReminderSource) DueForReminder(window time.Duration, now time.Time) ([]models.Shift, error) {
	return f.due, f.err
}

func (f *fakeReminderSource) MarkReminded(shiftID uint, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.reminded = append(f.reminded, shiftID)
	return nil
}

type fakeReminderNotifier struct {
	sent []uint // shift IDs
	err  error
}

func (f *fakeReminderNotifier) ShiftReminder(userID uint, shiftID uint, siteName, startsIn string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, shiftID)
	return nil
}

func dueShift(id uint, startsAt time.Time) models.Shift {
	return models.Shift{
		ID:       id,
		StartsAt: startsAt,
		Guard:    models.GuardProfile{UserID: 100 + id},
		Site:     models.Site{Name: "depot"},
	}
}

func TestSweep_RemindsAndMarks(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	shifts := &fakeReminderSource{due: []models.Shift{
		dueShift(1, now.Add(30*time.Minute)),
		dueShift(2, now.Add(45*time.Minute)),
	}}
	notifier := &fakeReminderNotifier{}
	sweeper := NewReminderSweeper(shifts, notifier, time.Hour, time.Minute)

	sweeper.Sweep(now)

	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 reminders, got %v", notifier.sent)
	}
	if len(shifts.reminded) != 2 {
		t.Fatalf("expected 2 shifts marked, got %v", shifts.reminded)
	}
}

func TestSweep_NotifyErrorLeavesShiftUnmarked(t *testing.T) {
	now := time.Now()
	shifts := &fakeReminderSource{due: []models.Shift{dueShift(1, now.Add(10 * time.Minute))}}
	notifier := &fakeReminderNotifier{err: errFake}
	sweeper := NewReminderSweeper(shifts, notifier, time.Hour, time.Minute)

	sweeper.Sweep(now)

	if len(shifts.reminded) != 0 {
		t.Fatalf("shift should not be marked when notify fails, got %v", shifts.reminded)
	}
}

func TestSweep_QueryErrorIsQuiet(t *testing.T) {
	shifts := &fakeReminderSource{err: errFake}
	sweeper := NewReminderSweeper(shifts, &fakeReminderNotifier{}, time.Hour, time.Minute)
	sweeper.Sweep(time.Now()) // must not panic
}
