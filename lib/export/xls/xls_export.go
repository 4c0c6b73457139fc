package xlsexport

import (
	"bytes"
	dbmodels "staffing-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportMissionList(list []dbmodels.Mission) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

const missionSheet = "Миссии"

var missionHeaders = []string{"Кандидат", "Вакансия", "Компания", "Статус", "Дата начала", "Дата окончания", "Оценка", "Комментарий"}

func (i impl) ExportMissionList(list []dbmodels.Mission) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, missionHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeMissionData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, missionSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func writeMissionData(f *excelize.File, sheet string, list []dbmodels.Mission, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(missionHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := make([]interface{}, 0, len(missionHeaders))
		if item.Candidate != nil {
			values = append(values, item.Candidate.GetFullName())
		} else {
			values = append(values, item.CandidateID)
		}
		if item.Offer != nil {
			values = append(values, item.Offer.Title)
		} else {
			values = append(values, item.OfferID)
		}
		values = append(values, item.CompanyID, item.Status.ToHuman(), item.StartDate.Format("02.01.2006"))
		if item.EndDate != nil {
			values = append(values, item.EndDate.Format("02.01.2006"))
		} else {
			values = append(values, "")
		}
		if item.Rating != nil {
			values = append(values, *item.Rating)
		} else {
			values = append(values, "")
		}
		values = append(values, item.Note)

		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
