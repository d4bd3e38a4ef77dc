package models

// Contact - экстренный контакт пользователя
type Contact struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

// UserProfile - данные из внешнего хранилища пользователей
type UserProfile struct {
	UserID            string    `json:"userId"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone,omitempty"`
	EmergencyContacts []Contact `json:"emergencyContacts"`
}

// NotifyResult - итог рассылки SMS
type NotifyResult struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// SMSReceipt - ответ шлюза на отправку
type SMSReceipt struct {
	Provider  string `json:"provider"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	To        string `json:"to"`
}
