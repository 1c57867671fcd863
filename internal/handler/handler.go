package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/scheduling"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	resolver    *scheduling.Resolver
	negotiator  *scheduling.Negotiator
	booker      *scheduling.Booker

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	resolver := scheduling.NewResolver(repo)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		resolver:    resolver,
		negotiator:  scheduling.NewNegotiator(),
		booker:      scheduling.NewBooker(resolver),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
			})
		})

		// 审核官维护自己的可用性规则
		r.Route("/availability-rules", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.RequiredRole([]domain.Role{domain.RoleReviewer}))
			r.Post("/", h.CreateAvailabilityRule)
			r.Get("/", h.GetMyAvailabilityRules)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.availabilityRule)
				r.Patch("/", h.UpdateAvailabilityRule)
				r.Delete("/", h.DeleteAvailabilityRule)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateApplication)
			r.Get("/", h.GetMyApplications)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.application)
				r.Get("/", h.GetApplication)
			})
		})

		// 面试调度：协商、直选、重新安排
		r.Route("/interviews/{id}", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.interview)
			r.Get("/", h.GetInterview)
			r.Get("/free-slots", h.GetInterviewFreeSlots)
			r.Post("/proposed-dates", h.ProposeInterviewDates)
			r.Post("/confirmed-date", h.ConfirmInterviewDate)
			r.Post("/slot", h.BookInterviewSlot)
			r.Post("/reschedule", h.RequestInterviewReschedule)
		})
	})
}
