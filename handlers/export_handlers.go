package handlers

import (
	"encoding/json"
	"net/http"

	"language-companion-api/jobs"
	"language-companion-api/utils"
)

type ExportHandler struct {
	jobManager *jobs.JobManager
}

// NewExportHandler accepts a nil job manager; exports are then reported as
// unavailable instead of failing at startup.
func NewExportHandler(jobManager *jobs.JobManager) *ExportHandler {
	return &ExportHandler{jobManager: jobManager}
}

func (eh *ExportHandler) QueueExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if eh.jobManager == nil {
		http.Error(w, "Export queue is not configured", http.StatusServiceUnavailable)
		return
	}

	session := getSessionFromContext(r.Context())
	if err := eh.jobManager.QueueExport(session.UserID); err != nil {
		utils.LogError("Failed to queue export for user %d: %v", session.UserID, err)
		http.Error(w, "Failed to queue export", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
}
