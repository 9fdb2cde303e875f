package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/webiquedev/opsboard-backend/models"
)

type Database struct {
	db                *gorm.DB
	projectRepo       *ProjectRepo
	subscriptionRepo  *CostRepo[models.Subscription]
	tikTokAdRepo      *CostRepo[models.TikTokAd]
	importantNoteRepo *NoteRepo[models.ImportantNote]
	generalNoteRepo   *NoteRepo[models.GeneralNote]
	dailyTaskRepo     *DailyTaskRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		projectRepo:       NewProjectRepo(db),
		subscriptionRepo:  NewCostRepo[models.Subscription](db),
		tikTokAdRepo:      NewCostRepo[models.TikTokAd](db),
		importantNoteRepo: NewNoteRepo[models.ImportantNote](db),
		generalNoteRepo:   NewNoteRepo[models.GeneralNote](db),
		dailyTaskRepo:     NewDailyTaskRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SubscriptionRepo() *CostRepo[models.Subscription] {
	return d.subscriptionRepo
}

func (d Database) TikTokAdRepo() *CostRepo[models.TikTokAd] {
	return d.tikTokAdRepo
}

func (d Database) ImportantNoteRepo() *NoteRepo[models.ImportantNote] {
	return d.importantNoteRepo
}

func (d Database) GeneralNoteRepo() *NoteRepo[models.GeneralNote] {
	return d.generalNoteRepo
}

func (d Database) DailyTaskRepo() *DailyTaskRepo {
	return d.dailyTaskRepo
}

// Migrate creates or alters every table.
func (d Database) Migrate() error {
	return migrate(d.db)
}

// Ping reports whether the store answers a trivial query.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}

func migrate(db *gorm.DB) error {
	return models.AutoMigrate(db)
}
