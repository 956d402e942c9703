package tester

import (
	"fmt"
	"os"

	"github.com/campusq/forum/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPath = "../../.test/"

var (
	db *gorm.DB
)

func dbFile() string {
	return fmt.Sprintf("%sdb/forum-%d.db", testPath, os.Getpid())
}

func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	err := os.MkdirAll(testPath+"db", os.ModePerm)
	if err != nil {
		panic(err)
	}

	db, err = gorm.Open(sqlite.Open(dbFile()+"?_busy_timeout=5000"), &gorm.Config{TranslateError: true})
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
