package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quckapp/audit/params"
)

// Google JSON API style response structures
type APIResponse struct {
	APIVersion string        `json:"apiVersion"`
	Data       any           `json:"data,omitempty"`
	Error      *APIErrorInfo `json:"error,omitempty"`
}

type APIErrorInfo struct {
	Code    int              `json:"code"`
	Message string           `json:"message"`
	Errors  []APIErrorDetail `json:"errors,omitempty"`
}

type APIErrorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func NewDataResponse(data any) APIResponse {
	return APIResponse{
		APIVersion: params.APIVersion,
		Data:       data,
	}
}

func NewErrorResponse(code int, message string) APIResponse {
	return APIResponse{
		APIVersion: params.APIVersion,
		Error: &APIErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// PagedResponse wraps a page of content together with paging metadata.
type PagedResponse struct {
	Content       any   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPagedResponse(content any, page, size int, total int64) PagedResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PagedResponse{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}

// parsePaging reads page/size query parameters, clamping the page size to
// the configured maximum.
func parsePaging(ctx *fiber.Ctx) (page, size int) {
	page = ctx.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	size = ctx.QueryInt("size", params.DefaultPageSize)
	if size <= 0 {
		size = params.DefaultPageSize
	}
	if size > params.MaxPageSize {
		size = params.MaxPageSize
	}
	return page, size
}
