package models

// OperatorRole - роль в JWT оператора, который ведёт протоколы матчей и рейтинг.
type OperatorRole string

const (
	OperatorAdmin  OperatorRole = "admin"
	OperatorEditor OperatorRole = "editor"
)

func (r OperatorRole) Valid() bool {
	return r == OperatorAdmin || r == OperatorEditor
}
