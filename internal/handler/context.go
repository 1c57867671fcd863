package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	UserInfoCtx         ContextKey = "userInfo"
	AvailabilityRuleCtx ContextKey = "availabilityRule"
	ApplicationCtx      ContextKey = "application"
	InterviewCtx        ContextKey = "interview"
	PartyCtx            ContextKey = "party"
)
