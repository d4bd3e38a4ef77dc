package identity

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

const defaultContactName = "Emergency Contact"

// ParseContacts разбирает колонку emergency_contacts. Встречаются три формата:
// JSON-массив ({phone,name}, строки или числа), одно JSON-число и строка
// номеров через запятую.
func ParseContacts(raw string) []models.Contact {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		contacts := make([]models.Contact, 0, len(items))
		for _, item := range items {
			if c, ok := parseContactItem(item); ok {
				contacts = append(contacts, c)
			}
		}
		return contacts
	}

	var single any
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		switch v := single.(type) {
		case float64:
			return []models.Contact{{Phone: numberText(raw), Name: defaultContactName}}
		case string:
			// строка в JSON-кавычках разбирается как обычный список
			return splitPhones(v)
		}
		return nil
	}

	return splitPhones(raw)
}

func parseContactItem(item json.RawMessage) (models.Contact, bool) {
	var obj struct {
		Phone json.RawMessage `json:"phone"`
		Name  string          `json:"name"`
	}
	if err := json.Unmarshal(item, &obj); err == nil && obj.Phone != nil {
		phone := scalarText(obj.Phone)
		if phone == "" {
			return models.Contact{}, false
		}
		name := obj.Name
		if name == "" {
			name = defaultContactName
		}
		return models.Contact{Phone: phone, Name: name}, true
	}

	if phone := scalarText(item); phone != "" {
		return models.Contact{Phone: phone, Name: defaultContactName}, true
	}
	return models.Contact{}, false
}

// scalarText возвращает JSON-строку или число как текст
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return numberText(n.String())
	}
	return ""
}

// numberText убирает дробную часть, которую дают числа вида 9876543210.0
func numberText(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return s
}

func splitPhones(raw string) []models.Contact {
	var contacts []models.Contact
	for _, part := range strings.Split(raw, ",") {
		phone := strings.TrimSpace(part)
		if phone == "" {
			continue
		}
		contacts = append(contacts, models.Contact{Phone: phone, Name: defaultContactName})
	}
	return contacts
}

// FilterContacts оставляет контакты с номером, который приводится к E.164
func FilterContacts(contacts []models.Contact, countryCode string) []models.Contact {
	valid := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if strings.TrimSpace(c.Phone) == "" {
			continue
		}
		if _, ok := service.NormalizePhone(c.Phone, countryCode); !ok {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}
