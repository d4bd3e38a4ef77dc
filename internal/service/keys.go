package service

// Ключи эфемерного хранилища
const (
	currentLocationPrefix = "location:current:"
	historyPrefix         = "location:history:"
	pointPrefix           = "location:"
	trackingPrefix        = "tracking:active:"
	emergencyPrefix       = "emergency:"
	activeEmergenciesKey  = "emergencies:active"
)

func currentLocationKey(userID string) string {
	return currentLocationPrefix + userID
}

func historyKey(userID, tourID string) string {
	return historyPrefix + userID + ":" + tourID
}

func pointKey(id string) string {
	return pointPrefix + id
}

func trackingKey(tourID string) string {
	return trackingPrefix + tourID
}

func emergencyKey(id string) string {
	return emergencyPrefix + id
}
