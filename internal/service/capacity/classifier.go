package capacity

import (
	"strings"

	"github.com/m04kA/SMC-RoomAvailability/internal/domain"
)

// Classifier определяет вместимость типа номера по коду и названию.
// PMS не отдает вместимость структурно, поэтому это эвристика по соглашениям об именовании.
type Classifier struct {
	rules           []Rule
	defaultCapacity int
}

// NewClassifier создает классификатор. Пустой список правил означает DefaultRules,
// defaultCapacity <= 0 означает domain.DefaultCapacity
func NewClassifier(rules []Rule, defaultCapacity int) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultCapacity
	}

	return &Classifier{
		rules:           rules,
		defaultCapacity: defaultCapacity,
	}
}

// Classify возвращает вместимость. Чистая функция, не возвращает ошибок
func (c *Classifier) Classify(code, name string) int {
	upperCode := strings.ToUpper(code)
	upperName := strings.ToUpper(name)

	for _, rule := range c.rules {
		if rule.matches(upperCode, upperName) {
			return rule.Capacity
		}
	}

	return c.defaultCapacity
}
