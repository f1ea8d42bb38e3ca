package entity

import "time"

// Client representa um cliente do comércio (cobranças e vendas).
type Client struct {
	ID        string
	Name      string
	CPF       string // armazenado no formato canônico XXX.XXX.XXX-XX
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
