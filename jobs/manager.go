package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"language-companion-api/db"
	"language-companion-api/utils"
)

const (
	TypeExportVocabulary = "vocab:export"
)

// JobManager wraps the asynq client/server pair used for background work.
// Currently that is vocabulary exports: writing a user's words to a JSON
// file outside the request path.
type JobManager struct {
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	database  *db.DB
	exportDir string
}

type ExportPayload struct {
	UserID      int       `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewJobManager(redisURL, exportDir string, database *db.DB) *JobManager {
	addr := strings.TrimPrefix(redisURL, "redis://")
	redisOpt := asynq.RedisClientOpt{
		Addr: addr,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"default": 3,
			"low":     1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			utils.LogError("Job failed: type=%s error=%v", task.Type(), err)
		}),
		Logger: &AsynqLogger{},
	})

	mux := asynq.NewServeMux()

	return &JobManager{
		client:    client,
		server:    server,
		mux:       mux,
		database:  database,
		exportDir: exportDir,
	}
}

func (jm *JobManager) RegisterHandlers() {
	jm.mux.HandleFunc(TypeExportVocabulary, jm.handleExportVocabulary)
}

func (jm *JobManager) Start() error {
	utils.LogStartup("Starting job queue worker...")
	return jm.server.Run(jm.mux)
}

func (jm *JobManager) Stop() {
	utils.LogShutdown("Stopping job queue...")
	jm.server.Stop()
	jm.server.Shutdown()
	jm.client.Close()
}

// QueueExport enqueues a vocabulary export for one user.
func (jm *JobManager) QueueExport(userID int) error {
	payload := ExportPayload{
		UserID:      userID,
		RequestedAt: time.Now(),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal export payload: %w", err)
	}

	task := asynq.NewTask(TypeExportVocabulary, payloadBytes)

	info, err := jm.client.Enqueue(task,
		asynq.Queue("low"),
		asynq.MaxRetry(3),
		asynq.Timeout(60*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue export task: %w", err)
	}

	utils.LogJob("Queued vocabulary export: ID=%s user=%d", info.ID, userID)
	return nil
}

func (jm *JobManager) handleExportVocabulary(ctx context.Context, task *asynq.Task) error {
	var payload ExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal export payload: %w", err)
	}

	utils.LogJob("Processing vocabulary export for user %d", payload.UserID)

	words, err := jm.database.GetWordsByUser(payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to load words for user %d: %w", payload.UserID, err)
	}

	if err := os.MkdirAll(jm.exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal words: %w", err)
	}

	filename := fmt.Sprintf("vocabulary_user%d_%s.json",
		payload.UserID, time.Now().Format("20060102-150405"))
	path := filepath.Join(jm.exportDir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	utils.LogJob("Exported %d words for user %d to %s", len(words), payload.UserID, path)
	return nil
}

// AsynqLogger routes asynq's internal logging through the shared helpers.
type AsynqLogger struct{}

func (l *AsynqLogger) Debug(args ...interface{}) {
	utils.LogDebug(fmt.Sprint(args...))
}

func (l *AsynqLogger) Info(args ...interface{}) {
	utils.LogInfo(fmt.Sprint(args...))
}

func (l *AsynqLogger) Warn(args ...interface{}) {
	utils.LogError(fmt.Sprint(args...))
}

func (l *AsynqLogger) Error(args ...interface{}) {
	utils.LogError(fmt.Sprint(args...))
}

func (l *AsynqLogger) Fatal(args ...interface{}) {
	utils.LogError(fmt.Sprint(args...))
}
