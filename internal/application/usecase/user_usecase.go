package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/auth"
	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/permission"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
)

// UserUseCase gestão de usuários: criação com regra de hierarquia, concessão
// de permissões extras, ativação/desativação e exclusão.
type UserUseCase struct {
	repo     repository.UserRepository
	recorder audit.Recorder
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.UserRepository, recorder audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, recorder: recorder}
}

// Create cria um usuário. A regra de hierarquia vale além da capacidade
// manage_users da rota: gerente só atribui reception e vendas.
func (uc *UserUseCase) Create(creator *entity.User, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if err := permission.ValidateRoleAssignment(creator.Role, in.Role); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Active:       true,
		// Primeiro acesso força troca de senha definida por terceiros.
		RequirePasswordChange: true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("usuário %s criado com papel %s", user.Username, user.Role)
	if err := uc.recorder.Record(creator.ID, creator.Username, entity.ActionUserCreated, detail); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuários com paginação.
func (uc *UserUseCase) List(limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Update altera cadastro de usuário. Troca de papel passa pela mesma regra de
// hierarquia da criação. A conta administradora principal não pode ser desativada.
func (uc *UserUseCase) Update(actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if err := permission.ValidateRoleAssignment(actor.Role, *in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		if user.Username == entity.AdminUsername && !*in.Active {
			return nil, domain.ErrProtectedUser
		}
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("usuário %s atualizado", user.Username)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionUserUpdated, detail); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// UpdatePermissions substitui as concessões extras do usuário. Admin não
// recebe concessões (já possui tudo); capacidades desconhecidas são rejeitadas.
func (uc *UserUseCase) UpdatePermissions(actor *entity.User, id string, perms []string) (*dto.UserResponse, error) {
	for _, p := range perms {
		if !permission.Known(permission.Capability(p)) {
			return nil, domain.ErrInvalidInput
		}
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin {
		return nil, domain.ErrInvalidInput
	}
	user.Permissions = perms
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("permissões de %s: %v", user.Username, perms)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionUserPermissions, detail); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete exclui um usuário. A conta administradora principal é protegida.
func (uc *UserUseCase) Delete(actor *entity.User, id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Username == entity.AdminUsername {
		return domain.ErrProtectedUser
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	detail := fmt.Sprintf("usuário %s excluído", user.Username)
	return uc.recorder.Record(actor.ID, actor.Username, entity.ActionUserDeleted, detail)
}
