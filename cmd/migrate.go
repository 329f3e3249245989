package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/AlexCourivaud/ShareTech2/config"
	"github.com/AlexCourivaud/ShareTech2/models"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Tag{},
		&models.Note{},
		&models.NoteTag{},
		&models.Task{},
		&models.TaskTag{},
		&models.Comment{},
	)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		db, err := config.ConnectDB(cfg)
		if err != nil {
			return err
		}
		if err := autoMigrate(db); err != nil {
			return err
		}
		log.Println("schema up to date")
		return nil
	},
}
