package handler

import (
	"license-hub/storage/sqlstore"
	"license-hub/types"
)

// AgreementDTO JSON 接口输出
type AgreementDTO struct {
	ID         uint         `json:"id"`
	Title      string       `json:"title"`
	Country    string       `json:"country"`
	Brand      string       `json:"brand"`
	Licenser   string       `json:"licenser"`
	Status     types.Status `json:"status"`
	StartDate  string       `json:"start_date,omitempty"`
	EndDate    string       `json:"end_date,omitempty"`
	Indefinite bool         `json:"indefinite"`
	Summary    string       `json:"summary"`
	ParentID   *uint        `json:"parent_id,omitempty"`
	Obsolete   bool         `json:"obsolete"`
	Owner      string       `json:"owner,omitempty"`
}

func toAgreementDTO(a *sqlstore.Agreement) AgreementDTO {
	dto := AgreementDTO{
		ID:         a.ID,
		Title:      a.Title,
		Country:    a.Country,
		Brand:      a.Brand,
		Licenser:   a.Licenser,
		Status:     a.Status,
		Indefinite: a.Indefinite,
		Summary:    a.Summary,
		ParentID:   a.ParentID,
		Obsolete:   a.Obsolete,
		Owner:      a.Owner,
	}
	if a.StartDate != nil {
		dto.StartDate = a.StartDate.Format(types.DateLayout)
	}
	if a.EndDate != nil {
		dto.EndDate = a.EndDate.Format(types.DateLayout)
	}
	return dto
}

func toAgreementDTOs(rows []sqlstore.Agreement) []AgreementDTO {
	out := make([]AgreementDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toAgreementDTO(&rows[i]))
	}
	return out
}

// agreementForm 上传页与确认页之间来回传递的表单
type agreementForm struct {
	Title      string
	Country    string
	Brand      string
	Licenser   string
	Summary    string
	StartDate  string
	EndDate    string
	Indefinite bool
}
