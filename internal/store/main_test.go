package store

import (
	"os"
	"testing"

	"github.com/scriptura/studyref/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()

	os.Exit(code)
}
