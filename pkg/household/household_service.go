package household

import (
	"Household-Food-Tracker/domain"
	"Household-Food-Tracker/entities"
	"Household-Food-Tracker/internal/utils"
	"Household-Food-Tracker/internal/utils/mailing"
	"Household-Food-Tracker/pkg/jwt"
	"Household-Food-Tracker/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	HouseholdService interface {
		CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error)
		InviteMember(ctx context.Context, req domain.InviteMemberRequest, userID string) error
		JoinHousehold(ctx context.Context, token string) error
		GetHousehold(ctx context.Context, userID string) (domain.HouseholdResponse, error)
	}

	householdService struct {
		householdRepository HouseholdRepository
		userRepository      user.UserRepository
		jwtService          jwt.JWTService
	}
)

func NewHouseholdService(householdRepository HouseholdRepository, userRepository user.UserRepository, jwtService jwt.JWTService) HouseholdService {
	return &householdService{
		householdRepository: householdRepository,
		userRepository:      userRepository,
		jwtService:          jwtService,
	}
}

func (s *householdService) CreateHousehold(ctx context.Context, req domain.CreateHouseholdRequest, userID string) (domain.HouseholdResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrParseUUID
	}

	admin, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrUserNotFound
	}
	if admin.HouseholdID != nil {
		return domain.HouseholdResponse{}, domain.ErrAlreadyInHousehold
	}

	household := &entities.Household{
		ID:      uuid.New(),
		Name:    req.Name,
		AdminID: admin.ID,
	}
	if err := s.householdRepository.CreateHousehold(ctx, household); err != nil {
		return domain.HouseholdResponse{}, err
	}

	admin.HouseholdID = &household.ID
	if err := s.userRepository.UpdateUser(ctx, admin); err != nil {
		return domain.HouseholdResponse{}, err
	}

	return domain.HouseholdResponse{
		ID:      household.ID.String(),
		Name:    household.Name,
		AdminID: household.AdminID.String(),
		Members: []domain.HouseholdMemberResponse{{
			ID:    admin.ID.String(),
			Name:  admin.Name,
			Email: admin.Email,
		}},
	}, nil
}

func (s *householdService) InviteMember(ctx context.Context, req domain.InviteMemberRequest, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	inviter, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if inviter.HouseholdID == nil {
		return domain.ErrNotHouseholdMember
	}

	household, err := s.householdRepository.GetHouseholdByID(ctx, *inviter.HouseholdID)
	if err != nil {
		return domain.ErrHouseholdNotFound
	}
	if household.AdminID != inviter.ID {
		return domain.ErrNotHouseholdAdmin
	}

	invitee, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if invitee.HouseholdID != nil {
		return domain.ErrInviteeAlreadyInHousehold
	}

	token, err := s.jwtService.GenerateLinkToken(
		map[string]any{
			"email":        invitee.Email,
			"household_id": household.ID.String(),
		},
		72*time.Hour,
	)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/households/join?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>%s has invited you to join the household %q.</p>"+
			"<p><a href=\"%s\">Accept the invitation</a>.</p>",
		inviter.Name, household.Name, link,
	)
	return mailing.SendMail(invitee.Email, "Household invitation", body)
}

func (s *householdService) JoinHousehold(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateLinkToken(token)
	if err != nil {
		return err
	}
	email, ok := claims["email"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}
	householdID, ok := claims["household_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	hid, err := uuid.Parse(householdID)
	if err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.householdRepository.GetHouseholdByID(ctx, hid); err != nil {
		return domain.ErrHouseholdNotFound
	}

	member, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if member.HouseholdID != nil {
		return domain.ErrAlreadyInHousehold
	}

	member.HouseholdID = &hid
	return s.userRepository.UpdateUser(ctx, member)
}

func (s *householdService) GetHousehold(ctx context.Context, userID string) (domain.HouseholdResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrParseUUID
	}

	member, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.HouseholdResponse{}, domain.ErrUserNotFound
	}
	if member.HouseholdID == nil {
		return domain.HouseholdResponse{}, domain.ErrNotHouseholdMember
	}

	household, err := s.householdRepository.GetHouseholdByID(ctx, *member.HouseholdID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.HouseholdResponse{}, domain.ErrHouseholdNotFound
		}
		return domain.HouseholdResponse{}, err
	}

	res := domain.HouseholdResponse{
		ID:      household.ID.String(),
		Name:    household.Name,
		AdminID: household.AdminID.String(),
	}
	for _, m := range household.Members {
		res.Members = append(res.Members, domain.HouseholdMemberResponse{
			ID:    m.ID.String(),
			Name:  m.Name,
			Email: m.Email,
		})
	}
	return res, nil
}
