package database

import (
	"fmt"
	"log"

	"bookclub-service/internal/book"
	"bookclub-service/internal/category"
	"bookclub-service/internal/club"
	"bookclub-service/internal/member"
	"bookclub-service/internal/voting"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&club.Club{},
		&book.Book{},
		&category.Category{},
		&voting.Voter{},
		&voting.Vote{},
		&member.MemberNominee{},
		&member.MemberVote{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}

// UpgradeLegacySchema adapts a pre-existing votes table from before the
// club_id column was denormalized onto votes. Runs once at startup, before
// AutoMigrate; on an up-to-date or empty database it is a no-op.
func UpgradeLegacySchema(db *gorm.DB) error {
	var tableExists bool
	err := db.Raw("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'votes')").Scan(&tableExists).Error
	if err != nil {
		return err
	}
	if !tableExists {
		return nil
	}

	var columnExists bool
	err = db.Raw("SELECT EXISTS (SELECT FROM information_schema.columns WHERE table_name = 'votes' AND column_name = 'club_id')").Scan(&columnExists).Error
	if err != nil {
		return err
	}
	if columnExists {
		return nil
	}

	log.Println("Upgrading legacy votes table: adding club_id")
	if err := db.Exec("ALTER TABLE votes ADD COLUMN club_id bigint").Error; err != nil {
		return err
	}
	err = db.Exec("UPDATE votes SET club_id = voters.club_id FROM voters WHERE voters.id = votes.voter_id").Error
	if err != nil {
		return err
	}
	return db.Exec("ALTER TABLE votes ALTER COLUMN club_id SET NOT NULL").Error
}
