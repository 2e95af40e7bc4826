package store

import (
	"errors"
	"time"

	"academy/database"
	courseModels "academy/models/course"
	"academy/progress"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormRemote is the durable progress source over the course_progress table.
type GormRemote struct{}

func (GormRemote) Get(userID, courseID uint) (progress.Record, bool, error) {
	var row courseModels.CourseProgress
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return progress.Record{}, false, nil
	}
	if err != nil {
		return progress.Record{}, false, err
	}

	rec, err := progress.DecodeRecord(row.ModuleProgress)
	if err != nil {
		// Unparseable row payload counts as no data
		return progress.Record{}, false, nil
	}
	rec.CurrentModuleIndex = row.CurrentModuleIndex
	return rec, true, nil
}

// Upsert overwrites the payload for an existing (user, course) row or
// inserts a new one. Last write observed by the store wins; there is no
// concurrency token.
func (GormRemote) Upsert(userID, courseID uint, rec progress.Record) error {
	payload, err := rec.Encode()
	if err != nil {
		return err
	}

	db := database.Database.Db
	var row courseModels.CourseProgress
	err = db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = courseModels.CourseProgress{
			UserID:             userID,
			CourseID:           courseID,
			ModuleProgress:     datatypes.JSON(payload),
			CurrentModuleIndex: rec.CurrentModuleIndex,
			SyncedAt:           time.Now(),
		}
		return db.Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.ModuleProgress = datatypes.JSON(payload)
	row.CurrentModuleIndex = rec.CurrentModuleIndex
	row.SyncedAt = time.Now()
	return db.Save(&row).Error
}
