package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/utils"
)

func (h *Handler) CreateAvailabilityRule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		DayOfWeek   int32      `json:"dayOfWeek" validate:"required,min=1,max=7"`
		StartTime   string     `json:"startTime"`
		EndTime     string     `json:"endTime"`
		ActiveFrom  time.Time  `json:"activeFrom" validate:"required"`
		ActiveUntil *time.Time `json:"activeUntil"`
		IsExclusion bool       `json:"isExclusion"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule := &domain.AvailabilityRule{
		OwnerID:     myInfo.ID,
		OwnerRole:   myInfo.Role,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ActiveFrom:  req.ActiveFrom,
		ActiveUntil: req.ActiveUntil,
		IsExclusion: req.IsExclusion,
	}

	if err := utils.ValidateAvailabilityRule(rule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateAvailabilityRule(rule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建可用性规则成功", rule)
}

func (h *Handler) GetMyAvailabilityRules(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	rules, err := h.repository.GetAvailabilityRulesByOwner(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取可用性规则成功", rules)
}

func (h *Handler) UpdateAvailabilityRule(w http.ResponseWriter, r *http.Request) {
	rule := r.Context().Value(AvailabilityRuleCtx).(*domain.AvailabilityRule)

	var req struct {
		DayOfWeek   *int32     `json:"dayOfWeek" validate:"omitempty,min=1,max=7"`
		StartTime   *string    `json:"startTime"`
		EndTime     *string    `json:"endTime"`
		ActiveFrom  *time.Time `json:"activeFrom"`
		ActiveUntil *time.Time `json:"activeUntil"`
		IsExclusion *bool      `json:"isExclusion"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.DayOfWeek != nil {
		rule.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		rule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		rule.EndTime = *req.EndTime
	}
	if req.ActiveFrom != nil {
		rule.ActiveFrom = *req.ActiveFrom
	}
	if req.ActiveUntil != nil {
		rule.ActiveUntil = req.ActiveUntil
	}
	if req.IsExclusion != nil {
		rule.IsExclusion = *req.IsExclusion
	}

	if err := utils.ValidateAvailabilityRule(rule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAvailabilityRule(rule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "规则已被修改，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新可用性规则成功", rule)
}

func (h *Handler) DeleteAvailabilityRule(w http.ResponseWriter, r *http.Request) {
	rule := r.Context().Value(AvailabilityRuleCtx).(*domain.AvailabilityRule)

	if err := h.repository.DeleteAvailabilityRule(rule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除可用性规则成功", nil)
}
