package models

type UserRole string

const (
	CandidateRole UserRole = "CANDIDATE"
	CompanyRole   UserRole = "COMPANY"
	AdminRole     UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	CandidateRole: "Кандидат",
	CompanyRole:   "Компания",
	AdminRole:     "Администратор платформы",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// Actor вызывающий, данные берутся из токена провайдера авторизации
type Actor struct {
	ID        string
	Role      UserRole
	CompanyID string
}

func (a Actor) IsAdmin() bool {
	return a.Role == AdminRole
}

func (a Actor) IsCompany() bool {
	return a.Role == CompanyRole && a.CompanyID != ""
}

const SystemUser = "Система"
