package domain

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
	RoleGuard  = "GUARD"
)

const (
	ShiftScheduled  = "SCHEDULED"
	ShiftInProgress = "IN_PROGRESS"
	ShiftCompleted  = "COMPLETED"
	ShiftCancelled  = "CANCELLED"
)

const (
	GeofenceEnter = "ENTER"
	GeofenceExit  = "EXIT"
)

const (
	BoundaryCircle  = "CIRCLE"
	BoundaryPolygon = "POLYGON"
)

const (
	NotifShiftReminder = "SHIFT_REMINDER"
	NotifIncidentAlert = "INCIDENT_ALERT"
	NotifMessage       = "MESSAGE"
	NotifSystem        = "SYSTEM"
	NotifEmergency     = "EMERGENCY"
)

const (
	IncidentOpen     = "OPEN"
	IncidentInReview = "IN_REVIEW"
	IncidentResolved = "RESOLVED"
)

const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// Incident severity options, lowest to highest.
var IncidentSeverities = []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}
