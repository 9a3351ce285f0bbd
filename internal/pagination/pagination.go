// Package pagination holds the page request parsed from query parameters and
// the page envelope returned by list endpoints.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskmgmt/task-management-api/internal/apperr"
)

const (
	DefaultSize = 10
	MaxSize     = 100
)

type Request struct {
	Number int
	Size   int
}

func (r Request) Offset() int {
	return r.Number * r.Size
}

// Meta mirrors the page block of the JSON envelope.
type Meta struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

type Page[T any] struct {
	Content []T  `json:"content"`
	Page    Meta `json:"page"`
}

func NewMeta(req Request, total int64) Meta {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Meta{
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Number == 0,
		Last:          req.Number >= totalPages-1,
		HasNext:       req.Number < totalPages-1,
		HasPrevious:   req.Number > 0,
	}
}

func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Page: NewMeta(req, total)}
}

// Map converts the content of a page while keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return Page[U]{Content: out, Page: p.Page}
}

// ParseQuery reads ?page and ?size. Missing values fall back to 0 and
// DefaultSize; malformed or out of range values are validation errors. The
// page number is bounded so that page*size and page+1 cannot overflow.
func ParseQuery(c *gin.Context) (Request, error) {
	req := Request{Number: 0, Size: DefaultSize}
	var fieldErrs []apperr.FieldError

	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxSize {
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: "size", Message: "must be between 1 and " + strconv.Itoa(MaxSize)})
		} else {
			req.Size = n
		}
	}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		maxPage := MaxPage(req.Size)
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n < 0:
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: "page", Message: "must be a non-negative integer"})
		case n > maxPage:
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: "page", Message: "must not exceed " + strconv.Itoa(maxPage)})
		default:
			req.Number = n
		}
	}

	if len(fieldErrs) > 0 {
		return Request{}, apperr.Validation(fieldErrs)
	}
	return req, nil
}

// MaxPage is the largest page number whose offset fits in an int for the
// given page size.
func MaxPage(size int) int {
	if size < 1 {
		size = 1
	}
	return math.MaxInt/size - 1
}
