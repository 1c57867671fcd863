package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 从 cookie 中获取 token
		cookie, err := r.Cookie("__ecnc_interview_manager_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "用户未登录")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		// 验证 token
		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "无效的令牌")
			return
		}

		// 将 claims 中的 role 和 sub 附在 context 中
		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myInfo, err := h.repository.GetUserByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "个人信息不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "权限不足")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDParam := chi.URLParam(r, "id")
		userID, err := strconv.ParseInt(userIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "用户ID无效")
			return
		}

		user, err := h.repository.GetUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "用户不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) preventOperateInitialAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if user.Username == h.config.InitialAdmin.Username {
			h.errorResponse(w, r, "禁止操作初始管理员")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// availabilityRule 加载路径中的规则并确保它属于当前登录的审核官
func (h *Handler) availabilityRule(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ruleIDParam := chi.URLParam(r, "id")
		ruleID, err := strconv.ParseInt(ruleIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "规则ID无效")
			return
		}

		rule, err := h.repository.GetAvailabilityRuleByID(ruleID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "规则不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
		if rule.OwnerID != myInfo.ID {
			h.errorResponse(w, r, "只能操作自己的可用性规则")
			return
		}

		ctx := context.WithValue(r.Context(), AvailabilityRuleCtx, rule)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// application 加载路径中的申请并确保当前用户是申请的参与方或管理员
func (h *Handler) application(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appIDParam := chi.URLParam(r, "id")
		appID, err := strconv.ParseInt(appIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "申请ID无效")
			return
		}

		app, err := h.repository.GetApplicationByID(appID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "申请不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
		if myInfo.Role != domain.RoleAdmin && myInfo.ID != app.ApplicantID && myInfo.ID != app.ReviewerID {
			h.errorResponse(w, r, "您不是该申请的参与方")
			return
		}

		ctx := context.WithValue(r.Context(), ApplicationCtx, app)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// interview 加载路径中的面试及其所属申请，并根据当前用户在申请中的身份确定参与方
func (h *Handler) interview(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		interviewIDParam := chi.URLParam(r, "id")
		interviewID, err := strconv.ParseInt(interviewIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "面试ID无效")
			return
		}

		iv, err := h.repository.GetInterviewByID(interviewID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "面试不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		app, err := h.repository.GetApplicationByID(iv.ApplicationID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "面试所属的申请不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

		var party domain.Role
		switch myInfo.ID {
		case app.ApplicantID:
			party = domain.RoleApplicant
		case app.ReviewerID:
			party = domain.RoleReviewer
		default:
			h.errorResponse(w, r, "您不是该面试的参与方")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, InterviewCtx, iv)
		ctx = context.WithValue(ctx, ApplicationCtx, app)
		ctx = context.WithValue(ctx, PartyCtx, party)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
