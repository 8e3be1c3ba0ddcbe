package capacity

import "strings"

// Rule правило эвристики: срабатывает, если код содержит любую из CodeContains
// или название содержит любую из NameContains. Сравнение без учета регистра.
type Rule struct {
	Capacity     int
	CodeContains []string
	NameContains []string
}

// DefaultRules правила по умолчанию, проверяются по порядку, первое совпадение побеждает
var DefaultRules = []Rule{
	{Capacity: 5, CodeContains: []string{"5"}, NameContains: []string{"QUINT"}},
	{Capacity: 4, CodeContains: []string{"4", "Q"}, NameContains: []string{"QUAD"}},
	{Capacity: 3, CodeContains: []string{"3"}, NameContains: []string{"TRIP"}},
	{Capacity: 2, CodeContains: []string{"2"}, NameContains: []string{"DUPLO", "DOUBLE"}},
	{Capacity: 1, CodeContains: []string{"1"}, NameContains: []string{"SINGLE", "SOLT"}},
}

// matches проверяет правило на уже приведенных к верхнему регистру коде и названии
func (r Rule) matches(upperCode, upperName string) bool {
	for _, token := range r.CodeContains {
		if token != "" && strings.Contains(upperCode, strings.ToUpper(token)) {
			return true
		}
	}
	for _, token := range r.NameContains {
		if token != "" && strings.Contains(upperName, strings.ToUpper(token)) {
			return true
		}
	}
	return false
}
