package service

import (
	"context"
	"log"
	"time"

	"vigil/internal/models"
)

type reminderSource interface {
	DueForReminder(window time.Duration, now time.Time) ([]models.Shift, error)
	MarkReminded(shiftID uint, at time.Time) error
}

type reminderNotifier interface {
	ShiftReminder(userID uint, shiftID uint, siteName, startsIn string) error
}

// ReminderSweeper periodically notifies guards about shifts starting soon.
// Each shift is reminded once; the sent timestamp on the row is the guard
// against duplicates across restarts.
type ReminderSweeper struct {
	shifts   reminderSource
	notifier reminderNotifier
	window   time.Duration
	interval time.Duration
}

func NewReminderSweeper(shifts reminderSource, notifier reminderNotifier, window, interval time.Duration) *ReminderSweeper {
	return &ReminderSweeper{shifts: shifts, notifier: notifier, window: window, interval: interval}
}

// Run sweeps on a ticker until the context is cancelled.
func (s *ReminderSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep dispatches reminders for shifts starting within the window.
func (s *ReminderSweeper) Sweep(now time.Time) {
	due, err := s.shifts.DueForReminder(s.window, now)
	if err != nil {
		log.Printf("[reminder] query: %v", err)
		return
	}
	for _, shift := range due {
		startsIn := shift.StartsAt.Sub(now).Round(time.Minute).String()
		if err := s.notifier.ShiftReminder(shift.Guard.UserID, shift.ID, shift.Site.Name, startsIn); err != nil {
			log.Printf("[reminder] shift %d: %v", shift.ID, err)
			continue
		}
		if err := s.shifts.MarkReminded(shift.ID, now); err != nil {
			log.Printf("[reminder] mark shift %d: %v", shift.ID, err)
		}
	}
}
