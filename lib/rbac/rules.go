package rbac

import (
	"staffing-backend/models"
)

var (
	CandidateRoleSet = []models.UserRole{models.CandidateRole}
	CompanyRoleSet   = []models.UserRole{models.CompanyRole}
	AdminRoleSet     = []models.UserRole{models.AdminRole}
	CompanyAdminSet  = []models.UserRole{models.CompanyRole, models.AdminRole}
	AllRoles         = []models.UserRole{models.CandidateRole, models.CompanyRole, models.AdminRole}
)

func (i *impl) initRules() {
	i.candidate()
	i.offer()
	i.proposal()
	i.mission()
	i.moderation()
	i.RegisterRule(models.CandidateModule, models.ViewPermission, AllRoles, "/api/v1/permissions [get]", nil)
}

// companyOnly роль компании и привязка к компании в токене
func companyOnly() models.RbacFunc {
	return func(actor models.Actor, uri string) bool {
		return actor.IsCompany()
	}
}

func (i *impl) candidate() {
	// собственная анкета
	i.RegisterRule(models.CandidateModule, models.CreatePermission, CandidateRoleSet, "/api/v1/candidate/register [post]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, CandidateRoleSet, "/api/v1/candidate/me [get]", nil)
	i.RegisterRule(models.CandidateModule, models.EditPermission, CandidateRoleSet, "/api/v1/candidate/me [put]", nil)
	i.RegisterRule(models.CandidateModule, models.EditPermission, CandidateRoleSet, "/api/v1/candidate/me/resume [put]", nil)
	// выборка одобренных кандидатов компанией
	i.RegisterRule(models.CandidateModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/candidate/list [post]", companyOnly())
	// VIEW
	i.RegisterRule(models.CandidateModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/candidate/list [post]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/candidate/{id} [get]", nil)
	i.RegisterRule(models.CandidateModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/candidate/{id}/resume [get]", nil)
}

func (i *impl) offer() {
	// VIEW
	i.RegisterRule(models.OfferModule, models.ViewPermission, CandidateRoleSet, "/api/v1/candidate/offers/list [post]", nil)
	i.RegisterRule(models.OfferModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/offer/list [post]", companyOnly())
	i.RegisterRule(models.OfferModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/offer/{id} [get]", companyOnly())
	// CREATE/EDIT
	i.RegisterRule(models.OfferModule, models.CreatePermission, CompanyRoleSet, "/api/v1/space/offer [post]", companyOnly())
	i.RegisterRule(models.OfferModule, models.EditPermission, CompanyRoleSet, "/api/v1/space/offer/{id} [put]", companyOnly())
	i.RegisterRule(models.OfferModule, models.EditPermission, CompanyRoleSet, "/api/v1/space/offer/{id}/status [put]", companyOnly())
}

func (i *impl) proposal() {
	// кандидат
	i.RegisterRule(models.ProposalModule, models.CreatePermission, CandidateRoleSet, "/api/v1/candidate/offers/{id}/apply [post]", nil)
	i.RegisterRule(models.ProposalModule, models.ViewPermission, CandidateRoleSet, "/api/v1/candidate/proposals/list [post]", nil)
	// компания
	i.RegisterRule(models.ProposalModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/proposal/list [post]", companyOnly())
	i.RegisterRule(models.ProposalModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/proposal/{id} [get]", companyOnly())
	i.RegisterRule(models.ProposalModule, models.FlowPermission, CompanyRoleSet, "/api/v1/space/proposal/{id}/review [put]", companyOnly())
}

func (i *impl) mission() {
	// VIEW
	i.RegisterRule(models.MissionModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/mission/list [post]", companyOnly())
	i.RegisterRule(models.MissionModule, models.ViewPermission, CompanyRoleSet, "/api/v1/space/mission/{id} [get]", companyOnly())
	i.RegisterRule(models.MissionModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/mission/list [post]", nil)
	i.RegisterRule(models.MissionModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/mission/{id} [get]", nil)
	// FLOW
	i.RegisterRule(models.MissionModule, models.FlowPermission, CompanyRoleSet, "/api/v1/space/mission/{id}/end [put]", companyOnly())
	i.RegisterRule(models.MissionModule, models.FlowPermission, CompanyRoleSet, "/api/v1/space/mission/{id}/rate [put]", companyOnly())
	i.RegisterRule(models.MissionModule, models.FlowPermission, AdminRoleSet, "/api/v1/admin_panel/mission/{id}/end [put]", nil)
	// EXPORT
	i.RegisterRule(models.MissionModule, models.ExportPermission, CompanyRoleSet, "/api/v1/space/mission/export [get]", companyOnly())
	i.RegisterRule(models.MissionModule, models.ExportPermission, AdminRoleSet, "/api/v1/admin_panel/mission/export [get]", nil)
}

func (i *impl) moderation() {
	i.RegisterRule(models.ModerationModule, models.FlowPermission, AdminRoleSet, "/api/v1/admin_panel/candidate/{id}/review [put]", nil)
	i.RegisterRule(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/proposal/list [post]", nil)
	i.RegisterRule(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/proposal/{id} [get]", nil)
	i.RegisterRule(models.ModerationModule, models.ViewPermission, AdminRoleSet, "/api/v1/admin_panel/proposal/{id}/history [get]", nil)
	i.RegisterRule(models.ModerationModule, models.CreatePermission, AdminRoleSet, "/api/v1/admin_panel/proposal [post]", nil)
	i.RegisterRule(models.ModerationModule, models.FlowPermission, AdminRoleSet, "/api/v1/admin_panel/proposal/{id}/review [put]", nil)
	i.RegisterRule(models.ModerationModule, models.FlowPermission, AdminRoleSet, "/api/v1/admin_panel/placement [post]", nil)
}
