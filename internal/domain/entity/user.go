package entity

import "time"

// PrivacySettings controls which advisory realtime signals a user exposes
// to conversation partners. Both default to enabled on signup.
type PrivacySettings struct {
	ShowOnlineStatus bool `json:"show_online_status" firestore:"showOnlineStatus"`
	ReadReceipts     bool `json:"read_receipts" firestore:"readReceipts"`
}

type UserStats struct {
	MessagesSent int64 `json:"messages_sent" firestore:"messagesSent"`
}

type User struct {
	ID           string          `json:"id" firestore:"id"`
	Email        string          `json:"email" firestore:"email"`
	FullName     string          `json:"full_name" firestore:"fullName"`
	Bio          string          `json:"bio" firestore:"bio"`
	ProfilePic   string          `json:"profile_pic" firestore:"profilePic"`
	ProfileTheme string          `json:"profile_theme" firestore:"profileTheme"`
	Privacy      PrivacySettings `json:"privacy" firestore:"privacy"`
	Stats        UserStats       `json:"stats" firestore:"stats"`
	Achievements []string        `json:"achievements" firestore:"achievements"`
	CreatedAt    time.Time       `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time       `json:"updated_at" firestore:"updatedAt"`
}

// HasAchievement reports whether the user already holds the given tier.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}
