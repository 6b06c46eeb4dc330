package background

import (
	"context"
	"fmt"
	"log"
	"time"

	"agora/internal/common"
	"agora/internal/repositories"
	"agora/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic maintenance jobs: purging expired
// admin tokens and backing up every table as CSV to object storage.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	tokenRepo  repositories.TokenRepository
	exportRepo repositories.ExportRepository
	storage    services.StorageService
	bucket     string
}

// NewJobScheduler creates the scheduler. storage may be nil when no
// object-storage target is configured; the backup job is skipped then.
func NewJobScheduler(tokenRepo repositories.TokenRepository, exportRepo repositories.ExportRepository,
	storage services.StorageService, bucket string) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		tokenRepo:  tokenRepo,
		exportRepo: exportRepo,
		storage:    storage,
		bucket:     bucket,
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Token purge - every hour
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.purgeExpiredTokens, context.Background()),
		gocron.WithName("token-purge"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create token purge job: %v", err)
	}

	if js.storage == nil {
		log.Printf("Object storage not configured, skipping table backup job")
		return
	}

	// Table backups - nightly at 03:00
	_, err = js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(js.backupTables, context.Background()),
		gocron.WithName("table-backup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create table backup job: %v", err)
	}
}

// purgeExpiredTokens deletes tokens past their expiry so stale logins
// cannot pile up in the table.
func (js *JobScheduler) purgeExpiredTokens(ctx context.Context) error {
	purged, err := js.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("Token purge failed: %v", err)
		return err
	}
	if purged > 0 {
		log.Printf("Purged %d expired admin tokens", purged)
	}
	return nil
}

// backupTables exports every table as CSV and uploads it as
// <table>/<table>-YYYY-MM-DD.csv.
func (js *JobScheduler) backupTables(ctx context.Context) error {
	if err := js.storage.EnsureBucketExists(ctx, js.bucket); err != nil {
		log.Printf("Backup bucket check failed: %v", err)
		return err
	}

	today := common.Today()
	for _, table := range repositories.ExportTables() {
		columns, rows, err := js.exportRepo.Rows(ctx, table)
		if err != nil {
			log.Printf("Backup export failed for %s: %v", table, err)
			continue
		}
		object := fmt.Sprintf("%s/%s-%s.csv", table, table, today)
		csv := common.EncodeCSV(columns, rows)
		if err := js.storage.UploadCSV(ctx, js.bucket, object, []byte(csv)); err != nil {
			log.Printf("Backup upload failed for %s: %v", table, err)
			continue
		}
		log.Printf("Backed up %s (%d rows)", table, len(rows))
	}
	return nil
}
