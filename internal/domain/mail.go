package domain

import "time"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type DatesProposedMailData struct {
	ApplicantName string      `json:"applicantName"`
	ReviewerName  string      `json:"reviewerName"`
	ProposedBy    Role        `json:"proposedBy"`
	Dates         []time.Time `json:"dates"`
	Observations  string      `json:"observations"`
}

type InterviewConfirmedMailData struct {
	ApplicantName string    `json:"applicantName"`
	ReviewerName  string    `json:"reviewerName"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	ConfirmedBy   Role      `json:"confirmedBy"`
}

type RescheduleRequestedMailData struct {
	ApplicantName string `json:"applicantName"`
	ReviewerName  string `json:"reviewerName"`
	Reason        string `json:"reason"`
}
