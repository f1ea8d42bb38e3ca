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
)

// ProductUseCase casos de uso de produtos e serviços vendáveis.
type ProductUseCase struct {
	repo     repository.ProductRepository
	billRepo repository.BillRepository
	recorder audit.Recorder
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, billRepo repository.BillRepository, recorder audit.Recorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, billRepo: billRepo, recorder: recorder}
}

// Create cadastra um produto. Quantity omitido vira ilimitado (serviços).
func (uc *ProductUseCase) Create(actor *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	qty := entity.QuantityUnlimited
	if in.Quantity != nil {
		if *in.Quantity < 0 && *in.Quantity != entity.QuantityUnlimited {
			return nil, domain.ErrInvalidInput
		}
		qty = *in.Quantity
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    qty,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("produto %s (%s) cadastrado", product.Name, product.Code)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionProductCreated, detail); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devolve um produto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista produtos com paginação.
func (uc *ProductUseCase) List(limit, offset int) ([]*dto.ProductResponse, error) {
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
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update altera o cadastro de um produto.
func (uc *ProductUseCase) Update(actor *entity.User, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 && *in.Quantity != entity.QuantityUnlimited {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("produto %s atualizado", product.Name)
	if err := uc.recorder.Record(actor.ID, actor.Username, entity.ActionProductUpdated, detail); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete exclui um produto. Guarda referencial: produto referenciado por
// cobrança com parcela pendente não pode ser excluído.
func (uc *ProductUseCase) Delete(actor *entity.User, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	open, err := uc.billRepo.HasOpenBillsForProduct(id)
	if err != nil {
		return err
	}
	if open {
		return domain.ErrProductHasOpenBills
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	detail := fmt.Sprintf("produto %s (%s) excluído", product.Name, product.Code)
	return uc.recorder.Record(actor.ID, actor.Username, entity.ActionProductDeleted, detail)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Unlimited:   p.Unlimited(),
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
