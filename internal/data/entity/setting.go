package entity

import (
	"strings"
	"time"
)

type SettingKey string

const (
	SettingGreetingText       SettingKey = "greeting_text"
	SettingGreetingImage      SettingKey = "greeting_image"
	SettingHeroImage          SettingKey = "hero_image"
	SettingNotificationEmails SettingKey = "notification_emails"
)

var settingKeys = map[SettingKey]bool{
	SettingGreetingText:       true,
	SettingGreetingImage:      true,
	SettingHeroImage:          true,
	SettingNotificationEmails: true,
}

func (k SettingKey) Valid() bool {
	return settingKeys[k]
}

// Public reports whether the key may be served to anonymous visitors.
func (k SettingKey) Public() bool {
	return k != SettingNotificationEmails
}

type Setting struct {
	Key       SettingKey `db:"key" json:"key"`
	Value     string     `db:"value" json:"value"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// SplitEmails parses the comma separated notification list.
func SplitEmails(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if email := strings.TrimSpace(part); email != "" {
			out = append(out, email)
		}
	}
	return out
}
