package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/repository"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/seed"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机申请人, 2: 插入随机审核官及其可用性规则, 3: 插入随机申请, 4: 插入整套演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的申请人数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(domain.RoleApplicant, cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机申请人", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入申请人", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入申请人成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的审核官数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(domain.RoleReviewer, cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机审核官", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入审核官", slog.String("error", err.Error()))
					continue
				}

				for _, rule := range utils.GenerateRandomAvailabilityRules(user.ID) {
					if err := repo.CreateAvailabilityRule(rule); err != nil {
						slog.Error("无法插入可用性规则", slog.String("error", err.Error()))
					}
				}

				cnt--
			}

			slog.Info("插入审核官成功", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的申请数量")
			return
		}

		// 把申请随机分配给已有的申请人和审核官
		applicants, err := repo.GetAllUsers(domain.RoleApplicant)
		if err != nil {
			slog.Error("无法获取申请人列表", slog.String("error", err.Error()))
			return
		}
		reviewers, err := repo.GetAllUsers(domain.RoleReviewer)
		if err != nil {
			slog.Error("无法获取审核官列表", slog.String("error", err.Error()))
			return
		}

		if len(applicants) == 0 || len(reviewers) == 0 {
			slog.Error("数据库中缺少申请人或审核官，请先执行操作 1 和 2")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			applicant := applicants[rand.Intn(len(applicants))]
			reviewer := reviewers[rand.Intn(len(reviewers))]

			app, iv := utils.GenerateRandomApplication(applicant.ID, reviewer.ID, cfg.Interview.DefaultDurationMinutes)
			if err := repo.CreateApplicationWithInterview(app, iv); err != nil {
				slog.Error("无法插入申请", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入申请成功", slog.Int("count", n-cnt))
	case 4:
		seed.SeedDemoData(repo, cfg, 5, n)
	default:
		slog.Error("指定的操作非法")
	}
}
