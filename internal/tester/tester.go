package tester

import (
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scriptura/studyref/internal/model"
)

const (
	testPath = "../../.test/"
)

var (
	db *gorm.DB
)

// dbFile is per process so test binaries of different packages can run in
// parallel against the shared .test directory.
func dbFile() string {
	return fmt.Sprintf("%sdb/studyref-%d.db", testPath, os.Getpid())
}

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"/db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(dbFile()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = model.Migrate(db)
	if err != nil {
		panic(err)
	}
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	err := os.RemoveAll(dbFile())
	if err != nil {
		panic(err)
	}
}
