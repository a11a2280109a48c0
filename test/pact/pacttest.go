//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "equipment-lending-api"
	ConsumerName = "lending-portal"

	StateEquipmentBaseline = "equipment baseline"
	StateEquipmentExists   = "equipment eq-pact-001 exists"
	StateEquipmentMissing  = "no equipment eq-pact-404"
	StateEquipmentBorrowed = "equipment eq-pact-001 is borrowed from 2025-11-03 to 2025-11-05"
)

const (
	ExistingEquipmentID   = "eq-pact-001"
	MissingEquipmentID    = "eq-pact-404"
	ExistingBorrowingID   = "brw-pact-001"
	ExistingEquipmentName = "Pact Projector"
	EmployeeID            = "emp-pact-001"

	// Today is the provider's calendar day during verification.
	Today = "2025-10-20"

	BorrowedFrom = "2025-11-03"
	BorrowedTo   = "2025-11-05"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the lending portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
