package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"path": "~/.tasktame/tasktame.db",
			"ttl":  0,
			"seal": false,
			"key":  "",
		},
		"scheduler": map[string]interface{}{
			"interval":     60,
			"force_poll":   false,
			"system_alarm": true,
		},
		"notify": map[string]interface{}{
			"telegram": map[string]interface{}{
				"bot_token": "",
				"chat_id":   "",
			},
			"terminal": false,
			"sound": map[string]interface{}{
				"enabled": true,
				"asset":   "",
			},
		},
		"pomodoro": map[string]interface{}{
			"focus_minutes":       25,
			"short_break_minutes": 5,
			"long_break_minutes":  15,
			"sessions_per_cycle":  4,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.tasktame/config.yaml"
}
