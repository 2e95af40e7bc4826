package store

import (
	"testing"

	"academy/database"
	courseModels "academy/models/course"
	"academy/progress"

	"gorm.io/datatypes"
)

func TestGormRemoteGetMissing(t *testing.T) {
	database.ConnectTestDb()

	_, found, err := GormRemote{}.Get(1, 1)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if found {
		t.Fatal("missing row reported found")
	}
}

func TestGormRemoteUpsertInsertThenUpdate(t *testing.T) {
	db := database.ConnectTestDb()

	rec := progress.EmptyRecord()
	rec.ModuleProgress = append(rec.ModuleProgress, progress.ModuleProgress{ModuleID: "1", VideoCompleted: true})
	rec.CurrentModuleIndex = 0

	if err := (GormRemote{}).Upsert(5, 2, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec.ModuleProgress = append(rec.ModuleProgress, progress.ModuleProgress{
		ModuleID:       "2",
		VideoCompleted: true,
		Quiz:           &progress.QuizProgress{Completed: true, Score: 100, Passed: true},
	})
	rec.CurrentModuleIndex = 1
	if err := (GormRemote{}).Upsert(5, 2, rec); err != nil {
		t.Fatalf("update: %v", err)
	}

	var count int64
	db.Model(&courseModels.CourseProgress{}).Where("user_id = ? AND course_id = ?", 5, 2).Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}

	got, found, err := GormRemote{}.Get(5, 2)
	if err != nil || !found {
		t.Fatalf("get after update: found=%v err=%v", found, err)
	}
	if got.Find("2") == nil || got.CurrentModuleIndex != 1 {
		t.Fatalf("persisted record wrong: %+v", got)
	}
}

func TestGormRemoteCorruptPayloadCountsAsMissing(t *testing.T) {
	db := database.ConnectTestDb()

	row := courseModels.CourseProgress{
		UserID:         9,
		CourseID:       9,
		ModuleProgress: datatypes.JSON([]byte("{broken")),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, found, err := GormRemote{}.Get(9, 9)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if found {
		t.Fatal("corrupt payload reported found")
	}
}
