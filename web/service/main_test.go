package service

import (
	"os"
	"testing"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/logger"

	"github.com/op/go-logging"
)

func TestMain(m *testing.M) {
	os.Setenv("KHUB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func setup(t *testing.T) {
	t.Helper()
	dbPath := t.TempDir() + "/test.db"
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}
