package db

import (
	dbmodels "staffing-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AutoMigrateDB(gdb *gorm.DB) error {
	log.Info("Запуск миграций")
	if err := gdb.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Candidate")
	}
	if err := gdb.AutoMigrate(&dbmodels.Offer{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Offer")
	}
	if err := gdb.AutoMigrate(&dbmodels.Proposal{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Proposal")
	}
	if err := gdb.AutoMigrate(&dbmodels.ProposalHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProposalHistory")
	}
	if err := gdb.AutoMigrate(&dbmodels.Mission{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Mission")
	}
	if err := createProposalPairTrigger(gdb); err != nil {
		return errors.Wrap(err, "ошибка создания триггера неизменности предложения")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

// ProposalPairImmutable текст ошибки триггера, по нему ошибка распознается в IsImmutablePairErr
const ProposalPairImmutable = "proposal_pair_immutable"

var pgProposalPairTrigger = []string{
	`CREATE OR REPLACE FUNCTION proposals_pair_immutable() RETURNS trigger AS $$
BEGIN
	IF NEW.offer_id <> OLD.offer_id
		OR NEW.candidate_id <> OLD.candidate_id
		OR NEW.company_id IS DISTINCT FROM OLD.company_id THEN
		RAISE EXCEPTION '` + ProposalPairImmutable + `';
	END IF;
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_proposals_pair_immutable ON proposals`,
	`CREATE TRIGGER trg_proposals_pair_immutable BEFORE UPDATE ON proposals
	FOR EACH ROW EXECUTE FUNCTION proposals_pair_immutable()`,
}

var sqliteProposalPairTrigger = []string{
	`CREATE TRIGGER IF NOT EXISTS trg_proposals_pair_immutable
	BEFORE UPDATE OF offer_id, candidate_id, company_id ON proposals
	FOR EACH ROW
	WHEN NEW.offer_id <> OLD.offer_id
		OR NEW.candidate_id <> OLD.candidate_id
		OR NEW.company_id IS NOT OLD.company_id
	BEGIN
		SELECT RAISE(ABORT, '` + ProposalPairImmutable + `');
	END`,
}

// createProposalPairTrigger кандидат, вакансия и компания предложения не меняются на уровне схемы,
// в том числе при UpdateColumn и Save в обход хуков gorm
func createProposalPairTrigger(gdb *gorm.DB) error {
	statements := pgProposalPairTrigger
	if gdb.Dialector.Name() == "sqlite" {
		statements = sqliteProposalPairTrigger
	}
	for _, statement := range statements {
		if err := gdb.Exec(statement).Error; err != nil {
			return err
		}
	}
	return nil
}
