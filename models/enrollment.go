// file: models/enrollment.go
package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Enrollment 报名记录，(user, hackathon) 唯一；拒绝是终态，从不删除
type Enrollment struct {
	ID          uint32           `gorm:"primarykey" json:"id"`
	UserID      uint32           `gorm:"uniqueIndex:unique_user_hackathon;not null" json:"user_id"`
	HackathonID uint32           `gorm:"uniqueIndex:unique_user_hackathon;not null" json:"hackathon_id"`
	User        User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status      EnrollmentStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	JoinedAt    time.Time        `json:"joined_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "vibebuild_enrollment"
}
