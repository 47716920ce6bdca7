package utils

import (
	"log"
	"time"

	"learnsphere/config"
	"learnsphere/database"
	courseModels "learnsphere/models/course"
	"learnsphere/progress"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// repairEnrollmentProgress recomputes every active enrollment from the
// completion tables. Progress writes are recompute-then-save without
// locking, so a race between a completion event and a report read can leave
// a stale percentage; the nightly sweep corrects any drift. It also issues
// certificates for enrollments that crossed into full completion without
// being stamped.
func repairEnrollmentProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_deleted = ? AND status <> ?", false, "COMPLETED").Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching enrollments: " + err.Error())
		return
	}

	repaired := 0
	for _, e := range enrollments {
		if _, _, err := progress.Recompute(db, e.UserID, e.CourseID); err != nil {
			logScheduler("Error recomputing enrollment: " + err.Error())
			continue
		}
		repaired++
	}

	logScheduler("Progress repair sweep finished")
	log.Printf("[PROGRESS-SCHEDULER] Recomputed %d enrollments", repaired)
}

// StartProgressScheduler starts the nightly progress repair job and returns
// the running scheduler
func StartProgressScheduler() *cron.Cron {
	c := cron.New()

	spec := config.AppConfig.ProgressRepairSpec
	if _, err := c.AddFunc(spec, repairEnrollmentProgress); err != nil {
		log.Printf("Invalid progress repair cron spec %q: %v", spec, err)
		return c
	}

	c.Start()
	logScheduler("Scheduler started with spec " + spec)
	return c
}
