package domain

import "time"

type ApplicationStage string

const (
	StageCVReview           ApplicationStage = "简历审核"
	StageDocumentCollection ApplicationStage = "材料收集"
	StageInterview          ApplicationStage = "面试"
	StageOnboarding         ApplicationStage = "入职办理"
	StageRejected           ApplicationStage = "已拒绝"
)

// Application 是外层招新流程的记录，面试调度只关心其中的申请人和审核官
type Application struct {
	ID          int64            `json:"id"`
	ApplicantID int64            `json:"applicantID"`
	ReviewerID  int64            `json:"reviewerID"`
	Stage       ApplicationStage `json:"stage"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}
