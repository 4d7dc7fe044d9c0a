package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// BotCategory is one category entry from the bot settings file. The
// admin bot offers these as keyboard choices during product creation;
// the id must match the category ids the storefront uses.
type BotCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Label returns the reply-keyboard label for the category. Operator
// input is matched against this exact string.
func (c BotCategory) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}

// BotSettings is the parsed bot settings JSON: the category catalog
// the bot offers and the allowlist of operator Telegram ids.
type BotSettings struct {
	Categories      []BotCategory `json:"categories"`
	AuthorizedUsers []int64       `json:"authorized_users"`
}

// IsAuthorized reports whether the given Telegram id is an operator.
func (s BotSettings) IsAuthorized(telegramID int64) bool {
	for _, id := range s.AuthorizedUsers {
		if id == telegramID {
			return true
		}
	}
	return false
}

// CategoryByLabel resolves an exact keyboard label back to its
// category. The second return is false when no label matches.
func (s BotSettings) CategoryByLabel(label string) (BotCategory, bool) {
	for _, c := range s.Categories {
		if c.Label() == label {
			return c, true
		}
	}
	return BotCategory{}, false
}

// LoadBotSettings reads and parses the settings JSON at path.
func LoadBotSettings(path string) (BotSettings, error) {
	var s BotSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read bot settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse bot settings: %w", err)
	}
	return s, nil
}
