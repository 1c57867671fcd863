package seed

import (
	"log/slog"
	"math/rand"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/utils"
)

// SeedDemoData 构造一轮小规模的招新数据：
// 若干审核官（带可用性规则）、若干申请人，以及把他们配对起来的申请
func SeedDemoData(r *repository.Repository, cfg *config.Config, reviewerCount int, applicantCount int) {
	reviewers := []*domain.User{}
	for i := 0; i < reviewerCount; i++ {
		reviewer, err := utils.GenerateRandomUser(domain.RoleReviewer, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成审核官", slog.String("error", err.Error()))
			continue
		}

		if err := r.CreateUser(reviewer); err != nil {
			slog.Error("无法插入审核官", slog.String("error", err.Error()))
			continue
		}

		for _, rule := range utils.GenerateRandomAvailabilityRules(reviewer.ID) {
			if err := r.CreateAvailabilityRule(rule); err != nil {
				slog.Error("无法插入可用性规则", slog.String("error", err.Error()))
			}
		}

		reviewers = append(reviewers, reviewer)
	}

	if len(reviewers) == 0 {
		slog.Error("没有成功插入任何审核官，跳过申请人和申请的生成")
		return
	}

	applicationCount := 0
	for i := 0; i < applicantCount; i++ {
		applicant, err := utils.GenerateRandomUser(domain.RoleApplicant, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("无法生成申请人", slog.String("error", err.Error()))
			continue
		}

		if err := r.CreateUser(applicant); err != nil {
			slog.Error("无法插入申请人", slog.String("error", err.Error()))
			continue
		}

		// 随机分配一个审核官
		reviewer := reviewers[rand.Intn(len(reviewers))]

		app, iv := utils.GenerateRandomApplication(applicant.ID, reviewer.ID, cfg.Interview.DefaultDurationMinutes)
		if err := r.CreateApplicationWithInterview(app, iv); err != nil {
			slog.Error("无法插入申请", slog.String("error", err.Error()))
			continue
		}

		applicationCount++
	}

	slog.Info("演示数据生成完成",
		slog.Int("reviewers", len(reviewers)),
		slog.Int("applications", applicationCount),
	)
}
