package domain

// ListQuery 三类目录接口共用的查询参数
type ListQuery struct {
	Search    string `form:"search"`
	IsActive  *bool  `form:"isActive"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=DESC"`
}

// Normalize 约束分页范围；limit 超界回落默认值
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
	if q.SortBy == "" {
		q.SortBy = "createdAt"
	}
	if q.SortOrder != "ASC" && q.SortOrder != "asc" {
		q.SortOrder = "DESC"
	}
}

// Page 带总数的分页结果
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}
