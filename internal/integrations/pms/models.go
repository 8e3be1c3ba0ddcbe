package pms

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TokenResponse ответ эндпоинта /liberar
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   *int   `json:"expires_in,omitempty"` // секунды, может отсутствовать
}

// AvailabilityReport ответ эндпоинта /Disponibilidade
type AvailabilityReport struct {
	RoomTypes []RoomTypeAvailability `json:"listaTipoApto"`
}

// RoomTypeAvailability тип номера с посуточной доступностью
type RoomTypeAvailability struct {
	Code FlexString        `json:"codigo"`
	Name FlexString        `json:"nome"`
	Days []DayAvailability `json:"listaSituacaoTipoApto"`
}

// DayAvailability доступность типа номера на одну дату
type DayAvailability struct {
	Date        string `json:"data"` // YYYY-MM-DD
	Available   int    `json:"qtdeDisponivel"`
	Maintenance int    `json:"qtdeManutencao"`
}

// FlexString строка, которую PMS может прислать числом или null
type FlexString string

// UnmarshalJSON принимает строку, число или null
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

// String возвращает значение без пробелов по краям
func (s FlexString) String() string {
	return strings.TrimSpace(string(s))
}
