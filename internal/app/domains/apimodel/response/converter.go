package response

import (
	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/modules/mdstorage"
)

// FromJobEntity 从领域对象转换为响应 DTO
func FromJobEntity(job *etjob.Job) *JobResponse {
	return &JobResponse{
		ID:            job.ID,
		Category:      string(job.Category),
		InputKind:     job.InputKind,
		Status:        string(job.Status),
		FailureDetail: job.FailureDetail,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}

// FromUploadGrant 从上传凭证转换为响应 DTO
func FromUploadGrant(grant *mdstorage.UploadGrant) *UploadGrantResponse {
	return &UploadGrantResponse{
		URL:       grant.URL,
		Key:       grant.Key,
		ExpiresAt: grant.ExpiresAt,
	}
}

// FromDownloadGrant 从下载凭证转换为响应 DTO
func FromDownloadGrant(jobID string, grant *mdstorage.DownloadGrant) *DownloadGrantResponse {
	return &DownloadGrantResponse{
		JobID:     jobID,
		URL:       grant.URL,
		ExpiresAt: grant.ExpiresAt,
	}
}
