package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicantID     int64  `json:"applicantID" validate:"required"`
		ReviewerID      int64  `json:"reviewerID" validate:"required"`
		Platform        string `json:"platform" validate:"required,oneof=腾讯会议 VooV 线下"`
		DurationMinutes int32  `json:"durationMinutes" validate:"omitempty,min=1"`
		// 面试的初始模式由创建方决定，默认为协商模式
		DirectSlotSelection bool `json:"directSlotSelection"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	applicant, err := h.repository.GetUserByID(req.ApplicantID)
	if err != nil || applicant.Role != domain.RoleApplicant {
		h.errorResponse(w, r, "申请人不存在")
		return
	}

	reviewer, err := h.repository.GetUserByID(req.ReviewerID)
	if err != nil || reviewer.Role != domain.RoleReviewer {
		h.errorResponse(w, r, "审核官不存在")
		return
	}

	app := &domain.Application{
		ApplicantID: req.ApplicantID,
		ReviewerID:  req.ReviewerID,
		Stage:       domain.StageInterview,
	}

	status := domain.InterviewStatusAwaitingReviewerProposedDates
	if req.DirectSlotSelection {
		status = domain.InterviewStatusAwaitingApplicantSlotSelection
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = int32(h.config.Interview.DefaultDurationMinutes)
	}

	iv := &domain.Interview{
		Status:          status,
		Platform:        domain.InterviewPlatform(req.Platform),
		DurationMinutes: durationMinutes,
	}

	if err := h.repository.CreateApplicationWithInterview(app, iv); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "applications_applicant_id_fkey":
				h.errorResponse(w, r, "申请人不存在")
			case "applications_reviewer_id_fkey":
				h.errorResponse(w, r, "审核官不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建申请成功", map[string]any{
		"application": app,
		"interview":   iv,
	})
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	apps, err := h.repository.GetApplicationsByPartyID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请列表成功", apps)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app := r.Context().Value(ApplicationCtx).(*domain.Application)

	iv, err := h.repository.GetInterviewByApplicationID(app.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取申请成功", map[string]any{
		"application": app,
		"interview":   iv,
	})
}
