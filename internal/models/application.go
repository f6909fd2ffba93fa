package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationType string

const (
	ApplicationTypeInvestor ApplicationType = "investor"
	ApplicationTypeBuyer    ApplicationType = "buyer"
)

func (t ApplicationType) Valid() bool {
	return t == ApplicationTypeInvestor || t == ApplicationTypeBuyer
}

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusContacted ApplicationStatus = "contacted"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusContacted:
		return true
	}
	return false
}

// Active reports whether the status holds the per-email uniqueness slot
func (s ApplicationStatus) Active() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusApproved
}

// Application is an investor or buyer access request. Variant fields that do
// not belong to Type stay nil.
type Application struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	Type       ApplicationType   `json:"type" db:"-"`
	Email      string            `json:"email" db:"email"`
	FullName   string            `json:"full_name" db:"full_name"`
	Phone      string            `json:"phone" db:"phone"`
	Message    *string           `json:"message,omitempty" db:"message"`
	Status     ApplicationStatus `json:"status" db:"status"`
	AdminNotes *string           `json:"admin_notes,omitempty" db:"admin_notes"`
	ReviewedBy *uuid.UUID        `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`

	// investor
	InvestmentAmount   *string `json:"investment_amount,omitempty" db:"investment_amount"`
	AccreditedInvestor *bool   `json:"accredited_investor,omitempty" db:"accredited_investor"`
	EntityType         *string `json:"entity_type,omitempty" db:"entity_type"`
	CompanyName        *string `json:"company_name,omitempty" db:"company_name"`
	ReferralSource     *string `json:"referral_source,omitempty" db:"referral_source"`

	// buyer
	InterestedUnits *string `json:"interested_units,omitempty" db:"interested_units"`
	PreQualified    *bool   `json:"pre_qualified,omitempty" db:"pre_qualified"`
}

// ApplicationReview is the set of columns an admin review writes
type ApplicationReview struct {
	Status     *ApplicationStatus
	AdminNotes *string
	ReviewedBy *uuid.UUID
	ReviewedAt *time.Time
}

func (r ApplicationReview) IsEmpty() bool {
	return r.Status == nil && r.AdminNotes == nil
}

// SubmitInvestorApplicationRequest is the public investor form
type SubmitInvestorApplicationRequest struct {
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Phone              string  `json:"phone"`
	InvestmentAmount   string  `json:"investment_amount"`
	AccreditedInvestor bool    `json:"accredited_investor"`
	EntityType         *string `json:"entity_type"`
	CompanyName        *string `json:"company_name"`
	ReferralSource     *string `json:"referral_source"`
	Message            *string `json:"message"`
}

// SubmitBuyerApplicationRequest is the public buyer form
type SubmitBuyerApplicationRequest struct {
	Email           string  `json:"email"`
	FullName        string  `json:"full_name"`
	Phone           string  `json:"phone"`
	InterestedUnits *string `json:"interested_units"`
	PreQualified    bool    `json:"pre_qualified"`
	Message         *string `json:"message"`
}

type SubmitApplicationResponse struct {
	Success       bool      `json:"success"`
	ApplicationID uuid.UUID `json:"application_id"`
	Message       string    `json:"message"`
}

// ReviewApplicationRequest is the body of PATCH /applications/admin
type ReviewApplicationRequest struct {
	ApplicationID   string  `json:"application_id"`
	ApplicationType string  `json:"application_type"`
	Status          *string `json:"status"`
	AdminNotes      *string `json:"admin_notes"`
	CreateUser      bool    `json:"create_user"`
}

type ReviewApplicationResponse struct {
	Application  *Application `json:"application"`
	TempPassword string       `json:"temp_password,omitempty"`
}
