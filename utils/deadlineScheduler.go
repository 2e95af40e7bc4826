package utils

import (
	"log"
	"strconv"
	"time"

	"academy/config"
	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progress"
	"academy/store"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DEADLINE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// courseModuleViews loads a course's modules in gating order as evaluator
// views, resolving quiz presence in one query.
func courseModuleViews(courseID uint) []progress.ModuleView {
	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		logScheduler("Error fetching modules for course " + strconv.FormatUint(uint64(courseID), 10) + ": " + err.Error())
		return nil
	}

	ids := make([]uint, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}
	hasQuiz := make(map[uint]bool)
	if len(ids) > 0 {
		var quizzes []courseModels.Quiz
		database.Database.Db.Where("module_id IN ? AND is_deleted = ?", ids, false).Find(&quizzes)
		for _, q := range quizzes {
			hasQuiz[q.ModuleID] = true
		}
	}

	views := make([]progress.ModuleView, len(modules))
	for i, m := range modules {
		views[i] = progress.ModuleView{ID: strconv.FormatUint(uint64(m.ID), 10), Title: m.Title, HasQuiz: hasQuiz[m.ID]}
	}
	return views
}

// processDeadlineReminders emails every student who has not finished a
// course whose deadline falls inside the reminder window.
func processDeadlineReminders() {
	deadlines, err := store.Deadlines.All()
	if err != nil {
		logScheduler("Error reading deadlines: " + err.Error())
		return
	}

	now := time.Now()
	window := config.AppConfig.DeadlineReminderDays

	for courseKey, date := range deadlines {
		days, ok := progress.DaysRemaining(now, date)
		if !ok || days < 0 || days > window {
			continue
		}

		courseID, err := strconv.ParseUint(courseKey, 10, 64)
		if err != nil {
			continue
		}

		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
			continue
		}

		views := courseModuleViews(uint(courseID))
		if len(views) == 0 {
			continue
		}

		var students []models.User
		if err := database.Database.Db.Where("role = ? AND is_deleted = ?", progress.RoleStudent, false).Find(&students).Error; err != nil {
			logScheduler("Error fetching students: " + err.Error())
			continue
		}

		for _, student := range students {
			var row courseModels.CourseProgress
			rec := progress.EmptyRecord()
			if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", student.ID, courseID, false).First(&row).Error; err == nil {
				if decoded, err := progress.DecodeRecord(row.ModuleProgress); err == nil {
					rec = decoded
				}
			}

			if progress.Summarize(views, rec).CourseComplete {
				continue
			}

			go func(email, name string, daysLeft int) {
				if err := SendDeadlineReminderEmail(email, name, course.Title, date, daysLeft); err != nil {
					logScheduler("Error sending reminder to " + email + ": " + err.Error())
				}
			}(student.Email, student.Name, days)
		}

		logScheduler("Processed reminders for course " + course.Title)
	}
}

// StartDeadlineScheduler runs the reminder pass every morning at 9 AM
func StartDeadlineScheduler(c *cron.Cron) {
	c.AddFunc("0 9 * * *", func() {
		processDeadlineReminders()
	})
	logScheduler("Deadline reminder scheduler started - runs daily at 9 AM")
}

// InitializeSchedulers initializes all background schedulers
func InitializeSchedulers() *cron.Cron {
	c := cron.New()

	StartDeadlineScheduler(c)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
