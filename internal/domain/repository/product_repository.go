package repository

import "github.com/rmacedo/caixa-api/internal/domain/entity"

// ProductRepository define o porto de persistência para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// DecrementQuantity faz a baixa atômica de estoque finito via compare-and-set
	// no banco. Produto ilimitado (sentinela) nunca é decrementado. Retorna
	// domain.ErrInsufficientStock quando o estoque não comporta a quantidade.
	DecrementQuantity(id string, qty int) error
}
