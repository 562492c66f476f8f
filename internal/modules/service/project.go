package service

import (
	"context"
	"errors"
	"strings"

	"github.com/feedloop/feedloop/internal/config"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/feedloop/feedloop/internal/pkg/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Project, error)
	Get(ctx context.Context, projectID uuid.UUID) (*model.Project, error)
	GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	InviteMember(ctx context.Context, projectID uuid.UUID, email string) (*model.ProjectMember, error)
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error)
}

type projectService struct {
	projects repo.ProjectRepo
	users    repo.UserRepo
	cfg      *config.Config
}

func NewProjectService(projects repo.ProjectRepo, users repo.UserRepo, cfg *config.Config) ProjectService {
	return &projectService{projects: projects, users: users, cfg: cfg}
}

func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Project, error) {
	key, err := utils.GenerateKey(s.cfg.Auth.IntegrationKeyPrefix)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:           strings.TrimSpace(name),
		OwnerID:        ownerID,
		IntegrationKey: key,
	}
	if err := s.projects.CreateWithOwner(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, projectID uuid.UUID) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error) {
	project, err := s.projects.GetByIntegrationKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	return s.projects.ListForUser(ctx, userID)
}

func (s *projectService) HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	return s.projects.HasAccess(ctx, projectID, userID)
}

// InviteMember adds an already-registered user to the project by email.
func (s *projectService) InviteMember(ctx context.Context, projectID uuid.UUID, email string) (*model.ProjectMember, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ok, err := s.projects.HasAccess(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrDuplicate
	}

	member := &model.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      model.RoleMember,
	}
	if err := s.projects.AddMember(ctx, member); err != nil {
		return nil, err
	}
	member.User = user
	return member, nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if project.OwnerID == userID {
		return ErrOwnerRemoval
	}

	if err := s.projects.RemoveMember(ctx, projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	return s.projects.ListMembers(ctx, projectID)
}
