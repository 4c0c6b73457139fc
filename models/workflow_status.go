package models

// CandidateStatus статус модерации анкеты кандидата
type CandidateStatus string

const (
	CandidateStatusPending  CandidateStatus = "pending"
	CandidateStatusApproved CandidateStatus = "approved"
	CandidateStatusRejected CandidateStatus = "rejected"
)

var candidateStatusHumanName = map[CandidateStatus]string{
	CandidateStatusPending:  "На модерации",
	CandidateStatusApproved: "Одобрен",
	CandidateStatusRejected: "Отклонен",
}

func (s CandidateStatus) ToHuman() string {
	if human, exist := candidateStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// Review переход по решению модератора, допустим только из pending
func (s CandidateStatus) Review(decision ModerationDecision) (CandidateStatus, error) {
	if err := decision.Validate(); err != nil {
		return s, err
	}
	if s != CandidateStatusPending {
		return s, NewInvalidTransition("анкета кандидата уже рассмотрена")
	}
	if decision == DecisionApprove {
		return CandidateStatusApproved, nil
	}
	return CandidateStatusRejected, nil
}

// OfferStatus статус вакансии
type OfferStatus string

const (
	OfferStatusActive OfferStatus = "active"
	OfferStatusPaused OfferStatus = "paused"
	OfferStatusFilled OfferStatus = "filled"
	OfferStatusClosed OfferStatus = "closed"
)

var offerStatusHumanName = map[OfferStatus]string{
	OfferStatusActive: "Активна",
	OfferStatusPaused: "Приостановлена",
	OfferStatusFilled: "Закрыта кандидатом",
	OfferStatusClosed: "В архиве",
}

func (s OfferStatus) ToHuman() string {
	if human, exist := offerStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsOpen вакансия еще не занята кандидатом
func (s OfferStatus) IsOpen() bool {
	return s == OfferStatusActive || s == OfferStatusPaused
}

// CompanyTransition смена статуса владельцем вакансии (active <-> paused).
// Статусы filled/closed выставляет только размещение кандидата.
func (s OfferStatus) CompanyTransition(to OfferStatus) error {
	switch to {
	case OfferStatusActive, OfferStatusPaused:
	case OfferStatusFilled, OfferStatusClosed:
		return NewUnauthorized("статус устанавливается только при размещении кандидата")
	default:
		return NewValidation("неизвестный статус вакансии")
	}
	if !s.IsOpen() {
		return NewInvalidTransition("вакансия уже закрыта")
	}
	return nil
}

// OpenOfferStatuses статусы, в которых вакансию можно редактировать и закрыть кандидатом
var OpenOfferStatuses = []OfferStatus{OfferStatusActive, OfferStatusPaused}

// ContractType тип договора
type ContractType string

const (
	ContractTypeCDI        ContractType = "cdi"
	ContractTypeCDD        ContractType = "cdd"
	ContractTypeInterim    ContractType = "interim"
	ContractTypeFreelance  ContractType = "freelance"
	ContractTypeInternship ContractType = "internship"
)

func (c ContractType) IsValid() bool {
	switch c {
	case ContractTypeCDI, ContractTypeCDD, ContractTypeInterim, ContractTypeFreelance, ContractTypeInternship:
		return true
	}
	return false
}

// ProposalOrigin источник предложения
type ProposalOrigin string

const (
	OriginCandidateApplication ProposalOrigin = "candidate_application"
	OriginAdminPlacement       ProposalOrigin = "admin_placement"
)

// ModerationDecision решение администратора
type ModerationDecision string

const (
	DecisionApprove ModerationDecision = "approve"
	DecisionReject  ModerationDecision = "reject"
)

func (d ModerationDecision) Validate() error {
	if d != DecisionApprove && d != DecisionReject {
		return NewValidation("неизвестное решение модератора")
	}
	return nil
}

// CompanyDecision решение компании
type CompanyDecision string

const (
	DecisionAccept        CompanyDecision = "accept"
	DecisionCompanyReject CompanyDecision = "reject"
)

func (d CompanyDecision) Validate() error {
	if d != DecisionAccept && d != DecisionCompanyReject {
		return NewValidation("неизвестное решение компании")
	}
	return nil
}

// AdminStatus статус модерации предложения
type AdminStatus string

const (
	AdminStatusPending  AdminStatus = "pending"
	AdminStatusApproved AdminStatus = "approved"
	AdminStatusRejected AdminStatus = "rejected"
)

var adminStatusHumanName = map[AdminStatus]string{
	AdminStatusPending:  "Ожидает модерации",
	AdminStatusApproved: "Одобрено модератором",
	AdminStatusRejected: "Отклонено модератором",
}

func (s AdminStatus) ToHuman() string {
	if human, exist := adminStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s AdminStatus) Review(decision ModerationDecision) (AdminStatus, error) {
	if err := decision.Validate(); err != nil {
		return s, err
	}
	if s != AdminStatusPending {
		return s, NewInvalidTransition("предложение уже рассмотрено модератором")
	}
	if decision == DecisionApprove {
		return AdminStatusApproved, nil
	}
	return AdminStatusRejected, nil
}

// CompanyStatus статус рассмотрения предложения компанией
type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusAccepted CompanyStatus = "accepted"
	CompanyStatusRejected CompanyStatus = "rejected"
)

var companyStatusHumanName = map[CompanyStatus]string{
	CompanyStatusPending:  "Ожидает решения компании",
	CompanyStatusAccepted: "Принято компанией",
	CompanyStatusRejected: "Отклонено компанией",
}

func (s CompanyStatus) ToHuman() string {
	if human, exist := companyStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// Review решение компании допустимо только после одобрения модератором
func (s CompanyStatus) Review(admin AdminStatus, decision CompanyDecision) (CompanyStatus, error) {
	if err := decision.Validate(); err != nil {
		return s, err
	}
	if admin != AdminStatusApproved {
		return s, NewInvalidTransition("предложение не одобрено модератором")
	}
	if s != CompanyStatusPending {
		return s, NewInvalidTransition("предложение уже рассмотрено компанией")
	}
	if decision == DecisionAccept {
		return CompanyStatusAccepted, nil
	}
	return CompanyStatusRejected, nil
}

// MissionStatus статус миссии
type MissionStatus string

const (
	MissionStatusOngoing   MissionStatus = "ongoing"
	MissionStatusCompleted MissionStatus = "completed"
)

var missionStatusHumanName = map[MissionStatus]string{
	MissionStatusOngoing:   "В работе",
	MissionStatusCompleted: "Завершена",
}

func (s MissionStatus) ToHuman() string {
	if human, exist := missionStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s MissionStatus) End() (MissionStatus, error) {
	if s != MissionStatusOngoing {
		return s, NewInvalidTransition("миссия уже завершена")
	}
	return MissionStatusCompleted, nil
}

func (s MissionStatus) CanRate() error {
	if s != MissionStatusCompleted {
		return NewInvalidTransition("оценить можно только завершенную миссию")
	}
	return nil
}

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return NewInvalidRating("оценка должна быть от 1 до 5")
	}
	return nil
}

// ReviewTrack трек согласования предложения
type ReviewTrack string

const (
	TrackCreated ReviewTrack = "created"
	TrackAdmin   ReviewTrack = "admin"
	TrackCompany ReviewTrack = "company"
)
