package models

type RbacFunc func(actor Actor, path string) bool

type Module string

const (
	CandidateModule  Module = "CANDIDATE"
	OfferModule      Module = "OFFER"
	ProposalModule   Module = "PROPOSAL"
	MissionModule    Module = "MISSION"
	ModerationModule Module = "MODERATION"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	FlowPermission   Permission = "FLOW"
	ExportPermission Permission = "EXPORT"
)
