package dto

import (
	"time"

	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/utils"
)

// LogTimeDTO represents a time log in API responses
type LogTimeDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	TaskID    uint64    `json:"taskId"`
	ProjectID uint64    `json:"projectId"`
	Time      float64   `json:"time"`
	Date      string    `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LogTimeListResponse struct {
	LogTimes   []LogTimeDTO             `json:"logtimes"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToLogTimeDTO(log models.LogTime) LogTimeDTO {
	return LogTimeDTO{
		ID:        log.ID,
		UserID:    log.UserID,
		TaskID:    log.TaskID,
		ProjectID: log.ProjectID,
		Time:      log.Time,
		Date:      log.Date.Format(time.DateOnly),
		Note:      log.Note,
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
}

func ToLogTimeListResponse(logs []models.LogTime, params utils.PaginationParams, total int64) LogTimeListResponse {
	items := make([]LogTimeDTO, len(logs))
	for i, log := range logs {
		items[i] = ToLogTimeDTO(log)
	}
	return LogTimeListResponse{
		LogTimes:   items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
