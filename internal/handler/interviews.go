package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/scheduling"
)

func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	h.successResponse(w, r, "获取面试成功", iv)
}

// GetInterviewFreeSlots 解析面试所属审核官在 [from, to) 内的可预约时段
func (h *Handler) GetInterviewFreeSlots(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		h.errorResponse(w, r, "查询开始时间无效")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		h.errorResponse(w, r, "查询结束时间无效")
		return
	}

	slotDuration := time.Duration(iv.DurationMinutes) * time.Minute

	slots, err := h.resolver.ComputeFreeSlots(r.Context(), app.ReviewerID, domain.RoleReviewer, from, to, slotDuration)
	if err != nil {
		h.schedulingError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可预约时段成功", slots)
}

// interviewParties 获取面试双方的用户信息，用于填写通知邮件
func (h *Handler) interviewParties(app *domain.Application) (*domain.User, *domain.User, error) {
	applicant, err := h.repository.GetUserByID(app.ApplicantID)
	if err != nil {
		return nil, nil, err
	}

	reviewer, err := h.repository.GetUserByID(app.ReviewerID)
	if err != nil {
		return nil, nil, err
	}

	return applicant, reviewer, nil
}

// counterpartUser 返回 party 对方对应的用户
func counterpartUser(party domain.Role, applicant *domain.User, reviewer *domain.User) *domain.User {
	if domain.Counterpart(party) == domain.RoleReviewer {
		return reviewer
	}
	return applicant
}

// persistInterview 把调度操作的结果持久化，版本冲突作为冲突错误返回给客户端
func (h *Handler) persistInterview(w http.ResponseWriter, r *http.Request, iv *domain.Interview) bool {
	if err := h.repository.UpdateInterview(iv); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "面试已被其他操作修改，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return false
	}

	return true
}

func (h *Handler) ProposeInterviewDates(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)
	party := r.Context().Value(PartyCtx).(domain.Role)

	var req struct {
		Dates        []time.Time `json:"dates" validate:"required,min=1,max=3"`
		Observations string      `json:"observations"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.negotiator.ProposeDates(iv, party, req.Dates, req.Observations); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	if !h.persistInterview(w, r, iv) {
		return
	}

	// 通知对方有新的候选时间
	applicant, reviewer, err := h.interviewParties(app)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	counterpart := counterpartUser(party, applicant, reviewer)

	mailMessage := domain.MailMessage{
		Type: "dates_proposed",
		To:   counterpart.Email,
		Data: domain.DatesProposedMailData{
			ApplicantName: applicant.FullName,
			ReviewerName:  reviewer.FullName,
			ProposedBy:    party,
			Dates:         iv.ProposedDates,
			Observations:  iv.Observations,
		},
	}

	if err := h.publishMailMessages(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提议面试时间成功", iv)
}

func (h *Handler) ConfirmInterviewDate(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)
	party := r.Context().Value(PartyCtx).(domain.Role)

	var req struct {
		ChosenDate time.Time `json:"chosenDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.negotiator.ConfirmDate(iv, party, req.ChosenDate); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	if !h.persistInterview(w, r, iv) {
		return
	}

	if !h.notifyInterviewConfirmed(w, r, app, iv) {
		return
	}

	h.successResponse(w, r, "确认面试时间成功", iv)
}

func (h *Handler) BookInterviewSlot(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)
	party := r.Context().Value(PartyCtx).(domain.Role)

	if party != domain.RoleApplicant {
		h.errorResponse(w, r, "只有申请人可以选择面试时段")
		return
	}

	var req struct {
		Start        time.Time `json:"start" validate:"required"`
		Observations string    `json:"observations"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.booker.BookSlot(r.Context(), iv, app.ReviewerID, req.Start, req.Observations); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	if !h.persistInterview(w, r, iv) {
		return
	}

	if !h.notifyInterviewConfirmed(w, r, app, iv) {
		return
	}

	h.successResponse(w, r, "预约面试时段成功", iv)
}

// notifyInterviewConfirmed 面试确认后给双方都发一封通知邮件
func (h *Handler) notifyInterviewConfirmed(w http.ResponseWriter, r *http.Request, app *domain.Application, iv *domain.Interview) bool {
	applicant, reviewer, err := h.interviewParties(app)
	if err != nil {
		h.internalServerError(w, r, err)
		return false
	}

	data := domain.InterviewConfirmedMailData{
		ApplicantName: applicant.FullName,
		ReviewerName:  reviewer.FullName,
		ScheduledAt:   *iv.ScheduledAt,
		ConfirmedBy:   *iv.ConfirmedBy,
	}

	messages := []domain.MailMessage{
		{Type: "interview_confirmed", To: applicant.Email, Data: data},
		{Type: "interview_confirmed", To: reviewer.Email, Data: data},
	}

	if err := h.publishMailMessages(messages...); err != nil {
		h.internalServerError(w, r, err)
		return false
	}

	return true
}

func (h *Handler) RequestInterviewReschedule(w http.ResponseWriter, r *http.Request) {
	iv := r.Context().Value(InterviewCtx).(*domain.Interview)
	app := r.Context().Value(ApplicationCtx).(*domain.Application)
	party := r.Context().Value(PartyCtx).(domain.Role)

	var req struct {
		Reason string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := scheduling.RequestReschedule(iv, party, req.Reason); err != nil {
		h.schedulingError(w, r, err)
		return
	}

	if !h.persistInterview(w, r, iv) {
		return
	}

	// 通知对方面试需要重新安排
	applicant, reviewer, err := h.interviewParties(app)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	counterpart := counterpartUser(party, applicant, reviewer)

	mailMessage := domain.MailMessage{
		Type: "reschedule_requested",
		To:   counterpart.Email,
		Data: domain.RescheduleRequestedMailData{
			ApplicantName: applicant.FullName,
			ReviewerName:  reviewer.FullName,
			Reason:        req.Reason,
		},
	}

	if err := h.publishMailMessages(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已申请重新安排面试", iv)
}
