package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("KHUB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("KHUB_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("KHUB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "data"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("KHUB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("KHUB_LISTEN")
}

func GetPort() string {
	port := os.Getenv("KHUB_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

func GetCertFile() string {
	return os.Getenv("KHUB_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("KHUB_KEY_FILE")
}

func GetWebDomain() string {
	return os.Getenv("KHUB_DOMAIN")
}
