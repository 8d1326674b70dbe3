package offerletter

import (
	"strings"
	"time"
)

type CreateOfferLetterRequest struct {
	EmployeeName     string   `json:"employee_name" binding:"required"`
	RelationPrefix   string   `json:"relation_prefix"`
	FatherName       string   `json:"father_name"`
	EmployeeAddress  []string `json:"employee_address"`
	Designation      string   `json:"designation" binding:"required"`
	JoiningDate      string   `json:"joining_date" binding:"required"`
	Basic            int64    `json:"basic"`
	HRA              int64    `json:"hra"`
	DA               int64    `json:"da"`
	SpecialAllowance int64    `json:"special_allowance"`
	TDS              int64    `json:"tds"`
	OfferedCTC       int64    `json:"offered_ctc" binding:"required"`
}

type UpdateOfferLetterStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OfferLetterResponse struct {
	ID               string   `json:"id"`
	EmployeeName     string   `json:"employee_name"`
	RelationPrefix   string   `json:"relation_prefix,omitempty"`
	FatherName       string   `json:"father_name,omitempty"`
	EmployeeAddress  []string `json:"employee_address,omitempty"`
	Designation      string   `json:"designation"`
	JoiningDate      string   `json:"joining_date"`
	Basic            int64    `json:"basic"`
	HRA              int64    `json:"hra"`
	DA               int64    `json:"da"`
	SpecialAllowance int64    `json:"special_allowance"`
	TDS              int64    `json:"tds"`
	OfferedCTC       int64    `json:"offered_ctc"`
	PDFURL           string   `json:"pdf_url,omitempty"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"created_at"`
}

func mapToResponse(o OfferLetter) OfferLetterResponse {
	var address []string
	if o.EmployeeAddress != "" {
		address = strings.Split(o.EmployeeAddress, "\n")
	}
	return OfferLetterResponse{
		ID:               o.ID.String(),
		EmployeeName:     o.EmployeeName,
		RelationPrefix:   o.RelationPrefix,
		FatherName:       o.FatherName,
		EmployeeAddress:  address,
		Designation:      o.Designation,
		JoiningDate:      o.JoiningDate.Format("2006-01-02"),
		Basic:            o.Basic,
		HRA:              o.HRA,
		DA:               o.DA,
		SpecialAllowance: o.SpecialAllowance,
		TDS:              o.TDS,
		OfferedCTC:       o.OfferedCTC,
		PDFURL:           o.PDFURL,
		Status:           o.Status,
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(offers []OfferLetter) []OfferLetterResponse {
	resp := make([]OfferLetterResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, mapToResponse(o))
	}
	return resp
}
