package domain

import "errors"

var (
	MessageSuccessCreateHousehold = "household created successfully"
	MessageSuccessInviteMember    = "invitation sent successfully"
	MessageSuccessJoinHousehold   = "joined household successfully"
	MessageSuccessGetHousehold    = "household retrieved successfully"

	MessageFailedCreateHousehold = "failed to create household"
	MessageFailedInviteMember    = "failed to send invitation"
	MessageFailedJoinHousehold   = "failed to join household"
	MessageFailedGetHousehold    = "failed to retrieve household"

	ErrHouseholdNotFound         = errors.New("household not found")
	ErrAlreadyInHousehold        = errors.New("user already belongs to a household")
	ErrNotHouseholdAdmin         = errors.New("only the household admin can do this")
	ErrNotHouseholdMember        = errors.New("user is not a member of this household")
	ErrInviteeAlreadyInHousehold = errors.New("invited user already belongs to a household")
)

type (
	CreateHouseholdRequest struct {
		Name string `json:"name" validate:"required"`
	}

	InviteMemberRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	HouseholdMemberResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	HouseholdResponse struct {
		ID      string                    `json:"id"`
		Name    string                    `json:"name"`
		AdminID string                    `json:"admin_id"`
		Members []HouseholdMemberResponse `json:"members"`
	}
)
