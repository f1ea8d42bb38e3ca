package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmacedo/caixa-api/internal/application/audit"
	"github.com/rmacedo/caixa-api/internal/application/dto"
	"github.com/rmacedo/caixa-api/internal/domain"
	"github.com/rmacedo/caixa-api/internal/domain/entity"
	"github.com/rmacedo/caixa-api/internal/domain/repository"
	"github.com/rmacedo/caixa-api/pkg/br"
)

// ClientUseCase casos de uso de clientes (cadastro para cobranças e vendas).
type ClientUseCase struct {
	repo     repository.ClientRepository
	billRepo repository.BillRepository
	recorder audit.Recorder
}

// NewClientUseCase constrói o caso de uso.
func NewClientUseCase(repo repository.ClientRepository, billRepo repository.BillRepository, recorder audit.Recorder) *ClientUseCase {
	return &ClientUseCase{repo: repo, billRepo: billRepo, recorder: recorder}
}

// Create cadastra um cliente. CPF é validado (módulo 11) e persistido no
// formato canônico.
func (uc *ClientUseCase) Create(actor *entity.User, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.CPF == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := br.ValidateCPF(in.CPF); err != nil {
		return nil, domain.ErrInvalidInput
	}
	cpf := br.FormatCPF(in.CPF)
	existing, err := uc.repo.GetByCPF(cpf)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CPF:       cpf,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("cliente %s (%s) cadastrado", client.Name, client.CPF)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionClientCreated, detail); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID devolve um cliente.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes com paginação.
func (uc *ClientUseCase) List(limit, offset int) ([]*dto.ClientResponse, error) {
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
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update altera o cadastro de um cliente. CPF não muda após criado.
func (uc *ClientUseCase) Update(actor *entity.User, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = *in.Name
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("cliente %s atualizado", client.Name)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionClientUpdated, detail); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete exclui um cliente. Guarda referencial: cliente com cobrança de
// parcela pendente não pode ser excluído; após quitação total, pode.
func (uc *ClientUseCase) Delete(actor *entity.User, id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	open, err := uc.billRepo.HasOpenBillsForClient(id)
	if err != nil {
		return err
	}
	if open {
		return domain.ErrClientHasOpenBills
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	detail := fmt.Sprintf("cliente %s (%s) excluído", client.Name, client.CPF)
	return uc.recorder.Record(actor.ID, actor.Username, entity.ActionClientDeleted, detail)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
