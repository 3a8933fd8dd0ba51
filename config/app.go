package config

import (
	"os"
	"strings"
)

// Identity provider credentials and role allow-lists.

func GetSessionSecret() string {
	return os.Getenv("KHUB_SECRET")
}

func GetAdminUsername() string {
	username := os.Getenv("KHUB_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	return username
}

func GetAdminPassword() string {
	password := os.Getenv("KHUB_ADMIN_PASSWORD")
	if password == "" {
		password = "password123"
	}
	return password
}

// GetBaseURL returns the externally visible origin of this deployment,
// used to build OAuth redirect URIs.
func GetBaseURL() string {
	baseURL := os.Getenv("KHUB_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + GetPort()
	}
	return strings.TrimSuffix(baseURL, "/")
}

func GetGoogleClientID() string {
	return os.Getenv("KHUB_GOOGLE_CLIENT_ID")
}

func GetGoogleClientSecret() string {
	return os.Getenv("KHUB_GOOGLE_CLIENT_SECRET")
}

func GetYandexClientID() string {
	return os.Getenv("KHUB_YANDEX_CLIENT_ID")
}

func GetYandexClientSecret() string {
	return os.Getenv("KHUB_YANDEX_CLIENT_SECRET")
}

// GetYandexScope returns the scope set requested from Yandex.
// Yandex expects a space-separated list.
func GetYandexScope() []string {
	scope := os.Getenv("KHUB_YANDEX_SCOPE")
	if scope == "" {
		scope = "login:email login:info login:avatar login:birthday login:phone"
	}
	return strings.Fields(scope)
}

func GetAdminEmails() []string {
	return splitEnvList(os.Getenv("KHUB_ADMIN_EMAILS"))
}

func GetModeratorEmails() []string {
	return splitEnvList(os.Getenv("KHUB_MODERATOR_EMAILS"))
}

func GetAdminTelegrams() []string {
	return splitEnvList(os.Getenv("KHUB_ADMIN_TELEGRAMS"))
}

func GetModeratorTelegrams() []string {
	return splitEnvList(os.Getenv("KHUB_MODERATOR_TELEGRAMS"))
}

func splitEnvList(value string) []string {
	var entries []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
