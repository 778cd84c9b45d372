package controllers_test

import (
	"testing"

	"github.com/shashiranjanraj/vastra/internal/server"
	"github.com/shashiranjanraj/vastra/pkg/storage"
	"github.com/shashiranjanraj/vastra/pkg/testkit"
)

// TestAPIScenarios exercises the HTTP surface against the full
// middleware stack and route table. Scenarios live in testdata/*.json
// and cover the input-validation paths that answer before any
// database round trip.
func TestAPIScenarios(t *testing.T) {
	storage.RegisterDisk("test", storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/uploads"))

	testkit.RunDir(t, server.Handler(), "testdata")
}
