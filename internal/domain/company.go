package domain

import "time"

// Company is the organization a contact belongs to.
type Company struct {
	ID        int64     `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Size      string    `json:"size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func CompanyFromRow(row map[string]any) *Company {
	return &Company{
		ID:        rowInt64(row, "id"),
		CompanyID: rowString(row, "company_id"),
		Name:      rowString(row, "name"),
		Domain:    rowString(row, "domain"),
		Industry:  rowString(row, "industry"),
		Size:      rowString(row, "size"),
		CreatedAt: rowTime(row, "created_at"),
	}
}
