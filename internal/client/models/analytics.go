package models

import "time"

// Analytics are the earnings and reach figures of one student.
type Analytics struct {
	TotalReads       int     `json:"totalReads"`
	TotalQuestions   int     `json:"totalQuestions"`
	TotalEarnings    float64 `json:"totalEarnings"`
	AvailableBalance float64 `json:"availableBalance"`
}

type WithdrawalRequest struct {
	ID        string    `json:"_id"`
	StudentID string    `json:"studentId"`
	UPIID     string    `json:"upiId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dashboard combines the three analytics calls.
type Dashboard struct {
	Analytics      Analytics
	RecentActivity []Question
	Withdrawals    []WithdrawalRequest
}

// Profile is a student with their posted questions.
type Profile struct {
	User      User
	Questions []Question
}
