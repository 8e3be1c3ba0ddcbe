package domain

import "errors"

var (
	// ErrUpstreamAuth возвращается, когда PMS не выдала токен доступа
	ErrUpstreamAuth = errors.New("pms: token issuance failed")

	// ErrUpstreamQuery возвращается, когда не удалось получить отчет о доступности
	ErrUpstreamQuery = errors.New("pms: availability query failed")
)
