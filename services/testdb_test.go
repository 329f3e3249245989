package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlexCourivaud/ShareTech2/models"
	"github.com/AlexCourivaud/ShareTech2/permissions"
)

// newTestDB opens an isolated in-memory sqlite database keyed by test name.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Tag{},
		&models.Note{},
		&models.NoteTag{},
		&models.Task{},
		&models.TaskTag{},
		&models.Comment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, creator models.User) models.Project {
	t.Helper()
	svc := &ProjectService{DB: db}
	project, err := svc.Create(permissions.ActorFor(creator), ProjectInput{Name: "P-" + creator.Username, Description: "test project"})
	require.NoError(t, err)
	return *project
}

func seedTag(t *testing.T, db *gorm.DB, name string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func actorOf(u models.User) permissions.Actor {
	return permissions.ActorFor(u)
}
