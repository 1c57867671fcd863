package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/interview-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(role domain.Role, password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         role,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// 生成某个审核官典型的一周可用性：工作日里随机几天，每天一个上午窗口和一个下午窗口，
// 外加随机的午休排除规则
func GenerateRandomAvailabilityRules(ownerID int64) []*domain.AvailabilityRule {
	activeFrom := time.Now().UTC().AddDate(0, 0, -rand.Intn(30))
	rules := []*domain.AvailabilityRule{}

	for day := int32(1); day <= 5; day++ {
		if rand.Intn(2) == 0 {
			continue
		}

		rules = append(rules, &domain.AvailabilityRule{
			OwnerID:    ownerID,
			OwnerRole:  domain.RoleReviewer,
			DayOfWeek:  day,
			StartTime:  fmt.Sprintf("%02d:00:00", 9+rand.Intn(2)),
			EndTime:    "12:00:00",
			ActiveFrom: activeFrom,
		})
		rules = append(rules, &domain.AvailabilityRule{
			OwnerID:    ownerID,
			OwnerRole:  domain.RoleReviewer,
			DayOfWeek:  day,
			StartTime:  "14:00:00",
			EndTime:    fmt.Sprintf("%02d:00:00", 17+rand.Intn(4)),
			ActiveFrom: activeFrom,
		})

		if rand.Intn(3) == 0 {
			rules = append(rules, &domain.AvailabilityRule{
				OwnerID:     ownerID,
				OwnerRole:   domain.RoleReviewer,
				DayOfWeek:   day,
				StartTime:   "14:00:00",
				EndTime:     "15:00:00",
				ActiveFrom:  activeFrom,
				IsExclusion: true,
			})
		}
	}

	return rules
}

var platforms = []domain.InterviewPlatform{
	domain.PlatformTencentMeeting,
	domain.PlatformVoov,
	domain.PlatformOnSite,
}

// 随机生成一条处于面试阶段的申请和它的面试，模式随机
func GenerateRandomApplication(applicantID int64, reviewerID int64, defaultDurationMinutes int) (*domain.Application, *domain.Interview) {
	app := &domain.Application{
		ApplicantID: applicantID,
		ReviewerID:  reviewerID,
		Stage:       domain.StageInterview,
	}

	status := domain.InterviewStatusAwaitingReviewerProposedDates
	if rand.Intn(2) == 0 {
		status = domain.InterviewStatusAwaitingApplicantSlotSelection
	}

	iv := &domain.Interview{
		Status:          status,
		Platform:        platforms[rand.Intn(len(platforms))],
		DurationMinutes: int32(defaultDurationMinutes),
	}

	return app, iv
}
