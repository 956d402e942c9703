package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&Course{},
		&User{},
		&Thread{},
		&Post{},
		&Material{},
		&AIAnswer{},
		&Upvote{},
		&Endorsement{},
		&AIEndorsement{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}

	return nil
}
