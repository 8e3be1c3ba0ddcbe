package pms

import (
	"errors"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

var (
	// ErrUpstreamAuth PMS не выдала токен (сеть, не-2xx, нет access_token)
	ErrUpstreamAuth = domain.ErrUpstreamAuth

	// ErrUpstreamQuery PMS не вернула отчет о доступности
	ErrUpstreamQuery = domain.ErrUpstreamQuery

	// ErrMissingAccessToken в ответе PMS нет поля access_token
	ErrMissingAccessToken = errors.New("pms client: access_token is missing in response")
)
