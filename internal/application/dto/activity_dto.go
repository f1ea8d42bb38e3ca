package dto

import "time"

// ActivityLogQuery filtros da consulta da trilha de auditoria.
// Datas no formato 2006-01-02; todos os filtros são opcionais e conjuntivos.
type ActivityLogQuery struct {
	DateStart string `query:"date_start"`
	DateEnd   string `query:"date_end"`
	Actor     string `query:"actor"`
	Action    string `query:"action"`
	PageRequest
}

// ActivityLogResponse entrada da trilha exposta pela API.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
